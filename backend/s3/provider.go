package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
)

// Scheme defines the provider type.
const Scheme = "s3"
const name = "AWS S3"

// Provider implements doclib.Provider for S3.  Each site is a bucket, named by Config.SiteName.
type Provider struct {
	client  Client
	options Options
}

// NewProvider initializer returns a new S3 Provider.
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "AWS S3"
func (p *Provider) Name() string {
	return name
}

// Scheme return "s3" as the initial part of a file URI ie: s3://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate resolves a client and checks the bucket is reachable with HeadBucket.  Any failure is reported as
// doclib.ErrAuthentication.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	if cfg.SiteName == "" {
		return nil, doclib.AuthenticationFailed(fmt.Errorf("no bucket configured"))
	}

	opts := p.options.merge(cfg)
	client := p.client
	if client == nil {
		c, err := getClient(ctx, opts)
		if err != nil {
			return nil, doclib.AuthenticationFailed(err)
		}
		client = c
	}

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.SiteName)}); err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}

	return &Session{
		client:  client,
		bucket:  cfg.SiteName,
		options: opts,
	}, nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
