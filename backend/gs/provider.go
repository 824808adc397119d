package gs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
)

// Scheme defines the provider type.
const Scheme = "gs"
const name = "Google Cloud Storage"

// Provider implements doclib.Provider for Google Cloud Storage.  Each site is a bucket, named by Config.SiteName.
type Provider struct {
	client  *storage.Client
	options Options
}

// NewProvider initializer returns a new Google Cloud Storage Provider.
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "Google Cloud Storage"
func (p *Provider) Name() string {
	return name
}

// Scheme return "gs" as the initial part of a file URI ie: gs://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate resolves a client and reads the bucket attributes.  Any failure is reported as
// doclib.ErrAuthentication.  A client built here is closed with the Session; a client given with WithClient is not.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	if cfg.SiteName == "" {
		return nil, doclib.AuthenticationFailed(fmt.Errorf("no bucket configured"))
	}

	client, owned := p.client, false
	if client == nil {
		c, err := storage.NewClient(ctx, parseClientOptions(p.options, cfg)...)
		if err != nil {
			return nil, doclib.AuthenticationFailed(err)
		}
		client, owned = c, true
	}

	bucket := client.Bucket(cfg.SiteName)
	if _, err := bucket.Attrs(ctx); err != nil {
		if owned {
			_ = client.Close()
		}
		return nil, doclib.AuthenticationFailed(err)
	}

	s := &Session{bucket: bucket, bucketName: cfg.SiteName}
	if owned {
		s.client = client
	}
	return s, nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
