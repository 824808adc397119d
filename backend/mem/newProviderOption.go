package mem

import (
	"time"

	"github.com/c2fo/doclib/options"
)

const (
	optionNameOptions = "options"
	optionNameClock   = "clock"
)

// WithOptions returns optionsOpt implementation of NewProviderOption
//
// WithOptions is used to specify options for the provider.
func WithOptions(opts Options) options.NewProviderOption[Provider] {
	return &optionsOpt{
		options: opts,
	}
}

type optionsOpt struct {
	options Options
}

func (o *optionsOpt) Apply(p *Provider) {
	p.options = o.options
}

func (o *optionsOpt) NewProviderOptionName() string {
	return optionNameOptions
}

// WithClock returns clockOpt implementation of NewProviderOption
//
// WithClock replaces the clock used to stamp created and modified times.
func WithClock(now func() time.Time) options.NewProviderOption[Provider] {
	return &clockOpt{
		now: now,
	}
}

type clockOpt struct {
	now func() time.Time
}

func (o *clockOpt) Apply(p *Provider) {
	if o.now != nil {
		p.now = o.now
	}
}

func (o *clockOpt) NewProviderOptionName() string {
	return optionNameClock
}
