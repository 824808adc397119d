package sharepoint

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/c2fo/doclib/options"
)

const (
	optionNameClient     = "client"
	optionNameCredential = "credential"
	optionNameOptions    = "options"
)

// WithClient returns clientOpt implementation of NewProviderOption
//
// WithClient is used to explicitly specify a Client to send requests through, for instance a mock client.  The
// credential and pipeline options are not used when a Client is given.
func WithClient(c Client) options.NewProviderOption[Provider] {
	return &clientOpt{
		client: c,
	}
}

type clientOpt struct {
	client Client
}

func (o *clientOpt) Apply(p *Provider) {
	p.client = o.client
}

func (o *clientOpt) NewProviderOptionName() string {
	return optionNameClient
}

// WithCredential returns credentialOpt implementation of NewProviderOption
//
// WithCredential replaces the azidentity credential built from Options and Config.
func WithCredential(cred azcore.TokenCredential) options.NewProviderOption[Provider] {
	return &credentialOpt{
		cred: cred,
	}
}

type credentialOpt struct {
	cred azcore.TokenCredential
}

func (o *credentialOpt) Apply(p *Provider) {
	p.credential = o.cred
}

func (o *credentialOpt) NewProviderOptionName() string {
	return optionNameCredential
}

// WithOptions returns optionsOpt implementation of NewProviderOption
//
// WithOptions is used to specify options for the provider.
func WithOptions(opts Options) options.NewProviderOption[Provider] {
	return &optionsOpt{
		options: opts,
	}
}

type optionsOpt struct {
	options Options
}

func (o *optionsOpt) Apply(p *Provider) {
	p.options = o.options
}

func (o *optionsOpt) NewProviderOptionName() string {
	return optionNameOptions
}
