package dropbox

import "github.com/c2fo/doclib/options"

const (
	optionNameClient  = "client"
	optionNameOptions = "options"
)

// WithClient returns clientOpt implementation of NewProviderOption
//
// WithClient is used to explicitly specify a Client to use for the provider.  No access token is needed when a Client
// is given.
func WithClient(c Client) options.NewProviderOption[Provider] {
	return &clientOpt{
		client: c,
	}
}

type clientOpt struct {
	client Client
}

func (ct *clientOpt) Apply(p *Provider) {
	p.client = ct.client
}

func (ct *clientOpt) NewProviderOptionName() string {
	return optionNameClient
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
