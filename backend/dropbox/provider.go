package dropbox

import (
	"context"
	"fmt"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
)

// Scheme defines the provider type.
const Scheme = "dbx"
const name = "Dropbox"

// Provider implements doclib.Provider for Dropbox.  Each site is a top level folder of the account, named by
// Config.SiteName.
type Provider struct {
	client  Client
	options Options
}

// NewProvider initializer returns a new Dropbox Provider.  Options default to NewOptions.
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{options: NewOptions()}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "Dropbox"
func (p *Provider) Name() string {
	return name
}

// Scheme returns "dbx" as the initial part of a file URI ie: dbx://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate checks that the site folder exists.  The Dropbox SDK calls take no context, so ctx is only checked
// before the call.  Any failure is reported as doclib.ErrAuthentication.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	if cfg.SiteName == "" {
		return nil, doclib.AuthenticationFailed(fmt.Errorf("no site folder configured"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := p.client
	if client == nil {
		c, err := newClient(p.options.merge(cfg))
		if err != nil {
			return nil, doclib.AuthenticationFailed(err)
		}
		client = c
	}

	root := "/" + cfg.SiteName
	meta, err := client.GetMetadata(files.NewGetMetadataArg(root))
	if err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}
	if _, ok := meta.(*files.FolderMetadata); !ok {
		return nil, doclib.AuthenticationFailed(fmt.Errorf("%s is not a folder", root))
	}

	return &Session{
		client:   client,
		siteName: cfg.SiteName,
	}, nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
