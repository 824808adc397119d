package sftp

import (
	"context"
	"errors"
	"fmt"
	"path"

	_sftp "github.com/pkg/sftp"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
	"github.com/c2fo/doclib/utils"
)

// Scheme defines the provider type.
const Scheme = "sftp"
const name = "Secure File Transfer Protocol"

// Provider implements doclib.Provider over SFTP.  Each site is a directory named by Config.SiteName below the path of
// Config.SiteURL, ie: sftp://robot@files.example.com:2222/srv/docs.
type Provider struct {
	client  *_sftp.Client
	options Options
}

// NewProvider initializer returns a new SFTP Provider.
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "Secure File Transfer Protocol"
func (p *Provider) Name() string {
	return name
}

// Scheme return "sftp" as the initial part of a file URI ie: sftp://
func (p *Provider) Scheme() string {
	return Scheme
}

// siteRoot returns the authority of cfg.SiteURL and the absolute site directory.  Without a site URL the site
// directory is below the server root.
func siteRoot(cfg doclib.Config) (utils.Authority, string, error) {
	var auth utils.Authority
	if cfg.SiteURL != "" {
		var err error
		if auth, err = utils.NewAuthority(cfg.SiteURL); err != nil {
			return auth, "", err
		}
	}
	return auth, path.Clean("/" + utils.JoinPath(auth.Path(), cfg.SiteName)), nil
}

// Authenticate connects, unless a client was given, and checks the site directory exists.  Any failure is reported
// as doclib.ErrAuthentication.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	auth, root, err := siteRoot(cfg)
	if err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}

	opts := p.options.merge(cfg)
	sess := &Session{
		client:    p.client,
		siteName:  cfg.SiteName,
		root:      root,
		authority: auth.String(),
		options:   opts,
	}

	if sess.client == nil {
		if auth.Host() == "" {
			return nil, doclib.AuthenticationFailed(errors.New("no host in site url"))
		}
		user := cfg.Username
		if user == "" {
			user = auth.User()
		}
		sshClient, client, err := getClient(ctx, auth.HostPortStr(defaultPort), user, opts)
		if err != nil {
			return nil, doclib.AuthenticationFailed(err)
		}
		sess.client = client
		sess.conn = sshClient
	}

	info, err := sess.client.Stat(root)
	if err == nil && !info.IsDir() {
		err = fmt.Errorf("%s is not a directory", root)
	}
	if err != nil {
		_ = sess.Close()
		return nil, doclib.AuthenticationFailed(err)
	}

	return sess, nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
