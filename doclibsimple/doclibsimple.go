package doclibsimple

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	_ "github.com/c2fo/doclib/backend/all" // register all backends
	"github.com/c2fo/doclib/config"
	"github.com/c2fo/doclib/library"
	"github.com/c2fo/doclib/options"
)

var (
	ErrMissingSite          = errors.New("unable to determine uri site for network-based scheme")
	ErrMissingScheme        = errors.New("unable to determine uri scheme")
	ErrRegProviderNotFound  = errors.New("no matching registered provider found")
	ErrBlankURI             = errors.New("uri is blank")
	ErrUnknownBackendScheme = errors.New("no provider registered for backend")
)

// NewClient is a convenience function that builds a library.Client from a uri of the form
// scheme://[user[:password]@]site/library/.  The site and library named in the uri replace those of cfg; the
// user info, when present, replaces the credentials of cfg.  Any registered provider is supported, though some
// may require prior configuration.  See the backend docs for the meaning of each Config field.
func NewClient(uri string, cfg doclib.Config, opts ...options.NewClientOption[library.Client]) (*library.Client, error) {
	p, site, err := parseSupportedURI(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to create library client for uri %q: %w", uri, err)
	}

	if site.name != "" {
		cfg.SiteName = site.name
	}
	if site.library != "" {
		cfg.Library = site.library
	}
	if site.username != "" {
		cfg.Username = site.username
	}
	if site.password != "" {
		cfg.Password = site.password
	}

	return library.New(p, cfg, opts...), nil
}

// NewClientFromSettings builds a library.Client for the provider registered under settings.Backend.
func NewClientFromSettings(settings *config.Settings, opts ...options.NewClientOption[library.Client]) (*library.Client, error) {
	p := backend.Backend(settings.Backend)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackendScheme, settings.Backend)
	}
	return library.New(p, settings.Site, opts...), nil
}

type siteURI struct {
	scheme   string
	name     string
	library  string
	username string
	password string
}

// parseURI attempts to parse a URI and validate that it returns required results
func parseURI(uri string) (*siteURI, error) {
	// return early if blank uri
	if uri == "" {
		return nil, ErrBlankURI
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("unknown url.Parse error: %w", err)
	}

	if u.Scheme == "" {
		return nil, ErrMissingScheme
	}

	site := &siteURI{
		scheme:  u.Scheme,
		name:    u.Host,
		library: strings.Trim(u.Path, "/"),
	}
	if u.User != nil {
		site.username = u.User.Username()
		site.password, _ = u.User.Password()
	}

	// network-based schemes require a site, but not file:// or mem://
	if site.name == "" && !(site.scheme == "file" || site.scheme == "mem") {
		return nil, ErrMissingSite
	}

	return site, nil
}

// parseSupportedURI checks if URI matches any backend name as prefix, capturing the longest(most specific) match found.
// For instance, given registered backends with the names:
//
// 'sharepoint'                       - registered by default
// 'sharepoint://Finance/'            - perhaps this was registered with an app-only credential
// 'sharepoint://Finance/Reports/'    - and this one against a different tenant
//
// See the expected registered provider for each:
//
// 'sharepoint://Finance/Reports/'    - URI: 'sharepoint://Finance/Reports/'         (most specific match)
// 'sharepoint://Finance/'            - URI: 'sharepoint://Finance/Shared%20Documents/' (site-level match only)
// 'sharepoint'                       - URI: 'sharepoint://Legal/Contracts/'         (scheme-level match, only)
func parseSupportedURI(uri string) (doclib.Provider, *siteURI, error) {
	site, err := parseURI(uri)
	if err != nil {
		return nil, nil, err
	}

	var longest string
	for _, name := range backend.RegisteredBackends() {
		// a bare scheme only matches its own scheme, so "s3" never claims "s3x://"
		if !strings.Contains(name, "://") && name != site.scheme {
			continue
		}
		if strings.HasPrefix(uri, name) && len(name) > len(longest) {
			longest = name
		}
	}

	if longest == "" {
		return nil, nil, ErrRegProviderNotFound
	}

	return backend.Backend(longest), site, nil
}
