package gs

import (
	"google.golang.org/api/option"

	"github.com/c2fo/doclib"
)

// Options holds Google Cloud Storage -specific options.  Currently only client options are used.
type Options struct {
	APIKey                string   `json:"apiKey,omitempty"`
	CredentialFile        string   `json:"credentialFilePath,omitempty"`
	Endpoint              string   `json:"endpoint,omitempty"`
	Scopes                []string `json:"scopes,omitempty"`
	WithoutAuthentication bool     `json:"withoutAuthentication,omitempty"`
}

// parseClientOptions turns Options into google client options.  Config.SiteURL, when set, is the endpoint.
func parseClientOptions(opts Options, cfg doclib.Config) []option.ClientOption {
	googleClientOpts := []option.ClientOption{}

	endpoint := opts.Endpoint
	if cfg.SiteURL != "" {
		endpoint = cfg.SiteURL
	}
	if endpoint != "" {
		googleClientOpts = append(googleClientOpts, option.WithEndpoint(endpoint))
	}

	switch {
	case opts.WithoutAuthentication:
		googleClientOpts = append(googleClientOpts, option.WithoutAuthentication())
	case opts.APIKey != "":
		googleClientOpts = append(googleClientOpts, option.WithAPIKey(opts.APIKey))
	case opts.CredentialFile != "":
		googleClientOpts = append(googleClientOpts, option.WithCredentialsFile(opts.CredentialFile))
	}

	if len(opts.Scopes) > 0 {
		googleClientOpts = append(googleClientOpts, option.WithScopes(opts.Scopes...))
	}
	return googleClientOpts
}
