package os

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
)

// Scheme defines the provider type.
const Scheme = "file"
const name = "os"

// Provider implements doclib.Provider for the local disk.
type Provider struct {
	tempDir string
}

// NewProvider initializer returns a new os Provider.
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "os"
func (p *Provider) Name() string {
	return name
}

// Scheme return "file" as the initial part of a file URI ie: file://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate checks that the root directory named by cfg.SiteURL exists.  Credentials are ignored.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := strings.TrimPrefix(cfg.SiteURL, Scheme+"://")
	if root == "" {
		return nil, doclib.AuthenticationFailed(fmt.Errorf("no root directory configured"))
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}
	if !info.IsDir() {
		return nil, doclib.AuthenticationFailed(fmt.Errorf("%s is not a directory", root))
	}

	return &Session{
		root:     root,
		siteName: cfg.SiteName,
		tempDir:  p.tempDir,
	}, nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
