package dropbox

import (
	"errors"
	"os"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/c2fo/doclib"
)

const envAccessToken = "DOCLIB_DROPBOX_ACCESS_TOKEN"

var errAccessTokenRequired = errors.New("dropbox access token is required")

// Options holds Dropbox-specific options.
type Options struct {
	// AccessToken is the OAuth2 token of the account.  Config.Password takes precedence when set.
	AccessToken string `json:"accessToken,omitempty"`
	// Verbose turns on the SDK request log.
	Verbose bool `json:"verbose,omitempty"`
}

// NewOptions returns Options seeded from DOCLIB_DROPBOX_ACCESS_TOKEN.
func NewOptions() Options {
	return Options{AccessToken: os.Getenv(envAccessToken)}
}

func (o Options) merge(cfg doclib.Config) Options {
	if cfg.Password != "" {
		o.AccessToken = cfg.Password
	}
	return o
}

func newClient(opts Options) (Client, error) {
	if opts.AccessToken == "" {
		return nil, errAccessTokenRequired
	}
	logLevel := dropbox.LogOff
	if opts.Verbose {
		logLevel = dropbox.LogInfo
	}
	return files.New(dropbox.Config{
		Token:    opts.AccessToken,
		LogLevel: logLevel,
	}), nil
}
