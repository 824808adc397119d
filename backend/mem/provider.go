package mem

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/options"
)

// Scheme defines the provider type.
const Scheme = "mem"
const name = "In-Memory Library"

type memFile struct {
	id       string
	data     []byte
	created  int64
	modified int64
	major    int
}

type site struct {
	mu    sync.RWMutex
	files map[string]*memFile
	lists map[string][]doclib.ListItem
}

// Provider implements doclib.Provider for the in-memory library.
type Provider struct {
	mu      sync.Mutex
	sites   map[string]*site
	options Options
	now     clock
}

// NewProvider initializer returns a new in-memory provider with no sites.
func NewProvider(opts ...options.NewProviderOption[Provider]) *Provider {
	p := &Provider{
		sites: make(map[string]*site),
		now:   defaultClock,
	}
	options.ApplyOptions(p, opts...)
	return p
}

// Name returns "In-Memory Library"
func (p *Provider) Name() string {
	return name
}

// Scheme return "mem" as the initial part of a mem URI ie: mem://
func (p *Provider) Scheme() string {
	return Scheme
}

// Authenticate opens a Session on the site named cfg.SiteName, creating the site on first use.
func (p *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.options.Username != "" && (cfg.Username != p.options.Username || cfg.Password != p.options.Password) {
		return nil, doclib.AuthenticationFailed(errors.New("invalid username or password"))
	}
	return &Session{
		provider: p,
		site:     p.site(cfg.SiteName),
		siteName: cfg.SiteName,
	}, nil
}

// PutList replaces the items of the list called listName on siteName.
func (p *Provider) PutList(siteName, listName string, items []doclib.ListItem) {
	s := p.site(siteName)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[listName] = slices.Clone(items)
}

func (p *Provider) site(siteName string) *site {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sites[siteName]
	if !ok {
		s = &site{
			files: make(map[string]*memFile),
			lists: make(map[string][]doclib.ListItem),
		}
		p.sites[siteName] = s
	}
	return s
}

func init() {
	backend.Register(Scheme, NewProvider())
}
