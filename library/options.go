package library

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/c2fo/doclib/options"
)

const (
	optionNameLogger  = "logger"
	optionNameMetrics = "metrics"
)

// WithLogger returns loggerOpt implementation of NewClientOption
//
// WithLogger sets the logger the Client reports its operations to.  The default logger discards everything.
func WithLogger(logger zerolog.Logger) options.NewClientOption[Client] {
	return &loggerOpt{
		logger: logger,
	}
}

type loggerOpt struct {
	logger zerolog.Logger
}

func (o *loggerOpt) Apply(c *Client) {
	c.logger = o.logger
}

func (o *loggerOpt) NewClientOptionName() string {
	return optionNameLogger
}

// WithMetrics returns metricsOpt implementation of NewClientOption
//
// WithMetrics registers the operation and byte counters with reg.  Clients sharing a registerer share the counters.
func WithMetrics(reg prometheus.Registerer) options.NewClientOption[Client] {
	return &metricsOpt{
		reg: reg,
	}
}

type metricsOpt struct {
	reg prometheus.Registerer
}

func (o *metricsOpt) Apply(c *Client) {
	if o.reg != nil {
		c.metrics = newMetrics(o.reg)
	}
}

func (o *metricsOpt) NewClientOptionName() string {
	return optionNameMetrics
}
