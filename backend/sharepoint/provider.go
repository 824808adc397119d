package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
	"github.com/c2fo/doclib/utils"
)

// Scheme defines the provider type.
const Scheme = "sharepoint"
const name = "SharePoint Online"

// Provider implements doclib.Provider for SharePoint Online.
type Provider struct {
	options    Options
	credential azcore.TokenCredential
	client     Client
}

// NewProvider initializer returns a new SharePoint Provider.  Options default to NewOptions().
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{options: NewOptions()}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "SharePoint Online"
func (p *Provider) Name() string {
	return name
}

// Scheme return "sharepoint" as the initial part of a sharepoint URI ie: sharepoint://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate builds a pipeline for the site and checks it can read the site web.  Any failure, including an
// unreachable host, is reported as doclib.ErrAuthentication.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	webURL, scope, err := siteURLs(cfg)
	if err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}

	client := p.client
	if client == nil {
		cred := p.credential
		if cred == nil {
			if cred, err = p.options.Credential(cfg); err != nil {
				return nil, doclib.AuthenticationFailed(err)
			}
		}
		client = newPipeline(cred, scope, p.options.ClientOptions)
	}

	s := &Session{
		client:   client,
		webURL:   webURL,
		siteName: cfg.SiteName,
	}
	if _, err := do(ctx, client, http.MethodGet, webURL+"/_api/web?$select=Title", nil); err != nil {
		return nil, doclib.AuthenticationFailed(err)
	}
	return s, nil
}

// siteURLs returns the web URL of the site and the token scope of its host.  SiteURL may be the tenant root or the
// full site URL.
func siteURLs(cfg doclib.Config) (webURL, scope string, err error) {
	if cfg.SiteURL == "" {
		return "", "", fmt.Errorf("no site url configured")
	}
	u, err := url.Parse(utils.RemoveTrailingSlash(cfg.SiteURL))
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "https" || u.Host == "" {
		return "", "", fmt.Errorf("site url %q must be an https url", cfg.SiteURL)
	}

	sitePath := utils.JoinPath("/sites", cfg.SiteName)
	if cfg.SiteName != "" && !strings.HasSuffix(u.Path, sitePath) {
		u.Path = utils.JoinPath(u.Path, sitePath)
		if !strings.HasPrefix(u.Path, "/") {
			u.Path = "/" + u.Path
		}
	}
	return u.String(), u.Scheme + "://" + u.Host + "/.default", nil
}

func init() {
	backend.Register(Scheme, NewProvider())
}
