package os

import "github.com/c2fo/doclib/options"

// WithTempDir provides an option to set a custom staging directory for the temporary files writes go through.  By
// default temporary files are created next to their target.
type WithTempDir struct {
	TempDir string
}

// Apply applies the temp dir option to the given Provider options.
func (o WithTempDir) Apply(p *Provider) {
	p.tempDir = o.TempDir
}

// NewProviderOptionName returns the option name.
func (o WithTempDir) NewProviderOptionName() string {
	return "WithTempDir"
}

// Ensure WithTempDir implements the NewProviderOption interface.
var _ options.NewProviderOption[Provider] = WithTempDir{}
