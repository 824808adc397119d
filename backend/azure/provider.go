package azure

import (
	"context"
	"fmt"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
)

// Scheme defines the provider type.
const Scheme = "az"
const name = "azure"

// Provider implements doclib.Provider for Azure Blob Storage.  Each site is a container, named by Config.SiteName.
type Provider struct {
	client  Client
	options Options
}

// NewProvider creates a new Provider.  Options default to NewOptions().
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{options: NewOptions()}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "azure"
func (p *Provider) Name() string {
	return name
}

// Scheme returns "az" as the initial part of a URI ie: az://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate builds a container client and checks the container properties.  Any failure is reported as
// doclib.ErrAuthentication.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	if cfg.SiteName == "" {
		return nil, doclib.AuthenticationFailed(fmt.Errorf("no container configured"))
	}

	client := p.client
	if client == nil {
		c, err := p.options.merge(cfg).newContainerClient(cfg.SiteURL, cfg.SiteName)
		if err != nil {
			return nil, doclib.AuthenticationFailed(err)
		}
		client = NewClient(c)
	}

	if err := client.Properties(ctx); err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}
	return &Session{client: client, container: cfg.SiteName}, nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
