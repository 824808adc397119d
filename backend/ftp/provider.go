package ftp

import (
	"context"
	"errors"
	"path"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
	"github.com/c2fo/doclib/utils"
)

// Scheme defines the provider type.
const Scheme = "ftp"
const name = "File Transfer Protocol"

// Provider implements doclib.Provider over FTP, FTPS and FTPES.  Each site is a directory named by Config.SiteName
// below the path of Config.SiteURL, ie: ftp://robot@ftp.example.com:2121/pub.
type Provider struct {
	client  Client
	options Options
}

// NewProvider initializer returns a new FTP Provider.
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "File Transfer Protocol"
func (p *Provider) Name() string {
	return name
}

// Scheme return "ftp" as the initial part of a file URI ie: ftp://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate dials and logs in, unless a client was given, then changes into the site directory.  Any failure is
// reported as doclib.ErrAuthentication.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	var auth utils.Authority
	if cfg.SiteURL != "" {
		var err error
		if auth, err = utils.NewAuthority(cfg.SiteURL); err != nil {
			return nil, doclib.AuthenticationFailed(err)
		}
	}

	sess := &Session{
		client:    p.client,
		siteName:  cfg.SiteName,
		root:      path.Clean("/" + utils.JoinPath(auth.Path(), cfg.SiteName)),
		authority: auth.String(),
	}

	if sess.client == nil {
		if auth.Host() == "" {
			return nil, doclib.AuthenticationFailed(errors.New("no host in site url"))
		}
		client, err := getClient(ctx, auth, p.options.merge(cfg))
		if err != nil {
			return nil, doclib.AuthenticationFailed(err)
		}
		sess.client = client
		sess.owned = true
	}

	if err := sess.client.ChangeDir(sess.root); err != nil {
		_ = sess.Close()
		return nil, doclib.AuthenticationFailed(err)
	}

	return sess, nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
