// Package config loads the settings of a doclib client from a YAML file, a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/c2fo/doclib"
)

// Environment variables read by Load.
const (
	EnvSiteURL  = "SHAREPOINT_URL_SITE"
	EnvSiteName = "SHAREPOINT_SITE_NAME"
	EnvLibrary  = "SHAREPOINT_DOC_LIBRARY"
	EnvUsername = "SHAREPOINT_EMAIL"
	EnvPassword = "SHAREPOINT_PASSWORD"
	EnvBackend  = "DOCLIB_BACKEND"
	EnvLogLevel = "DOCLIB_LOG_LEVEL"

	// EnvConfigFile names the YAML file Load reads when no WithFile option is given.
	EnvConfigFile = "DOCLIB_CONFIG"
)

// Defaults.
const (
	DefaultBackend  = "sharepoint"
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"
)

// Settings is everything needed to build a library client.
type Settings struct {
	Backend  string        `yaml:"backend" json:"backend"`
	LogLevel string        `yaml:"logLevel" json:"logLevel"`
	Site     doclib.Config `yaml:"site" json:"site"`
}

// Validate checks the settings that are interpreted locally.  Site credentials are left to the provider.
func (s *Settings) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.Backend, validation.Required),
		validation.Field(&s.LogLevel, validation.By(func(v any) error {
			_, err := zerolog.ParseLevel(v.(string))
			return err
		})),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", doclib.ErrValidation, err)
	}
	return nil
}

type loadOptions struct {
	file     string
	envFiles []string
	lookup   func(string) (string, bool)
}

// Option configures Load.
type Option func(*loadOptions)

// WithFile reads settings from the YAML file at path.  A missing file is an error.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithEnvFiles replaces the default .env file.  Files named here must exist.
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = paths
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		o.lookup = lookup
	}
}

// Load builds Settings from, lowest precedence first: defaults, the YAML file, the .env file and the process
// environment.  Values in a .env file never override a variable that is already set.
func Load(opts ...Option) (*Settings, error) {
	o := &loadOptions{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(o)
	}
	if o.file == "" {
		o.file, _ = o.lookup(EnvConfigFile)
	}

	s := &Settings{
		Backend:  DefaultBackend,
		LogLevel: DefaultLogLevel,
	}

	if o.file != "" {
		if err := readFile(o.file, s); err != nil {
			return nil, err
		}
	}

	dotenv, err := readEnvFiles(o.envFiles)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := o.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	for key, field := range map[string]*string{
		EnvSiteURL:  &s.Site.SiteURL,
		EnvSiteName: &s.Site.SiteName,
		EnvLibrary:  &s.Site.Library,
		EnvUsername: &s.Site.Username,
		EnvPassword: &s.Site.Password,
		EnvBackend:  &s.Backend,
		EnvLogLevel: &s.LogLevel,
	} {
		if v, ok := lookup(key); ok {
			*field = v
		}
	}
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func readFile(path string, s *Settings) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("%w: config file %s: %w", doclib.ErrFormat, path, err)
	}
	return nil
}

// readEnvFiles merges the given .env files, earlier files winning.  With no files it reads DefaultEnvFile if present.
func readEnvFiles(paths []string) (map[string]string, error) {
	if len(paths) == 0 {
		env, err := godotenv.Read(DefaultEnvFile)
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", doclib.ErrFormat, DefaultEnvFile, err)
		}
		return env, nil
	}

	merged := map[string]string{}
	for _, p := range paths {
		env, err := godotenv.Read(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read env file: %w", err)
			}
			return nil, fmt.Errorf("%w: %s: %w", doclib.ErrFormat, p, err)
		}
		for k, v := range env {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged, nil
}
