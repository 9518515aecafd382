package config

import (
	"fmt"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// ErrorsConfig holds the configuration for the error handling pipeline:
// the handler's response shaping options and the runtime error
// tracker's retention settings.
//
// Load it with the standard layered loader:
//
//	cfg := config.MustLoad[config.ErrorsConfig](
//	    config.New().WithEnvPrefix("LUMENDESK_ERRORS").WithFile("errors.yaml"),
//	)
//	handler := lderr.NewHandler(cfg.Handler.Options()...)
type ErrorsConfig struct {
	Handler HandlerConfig `env:"HANDLER" yaml:"handler" json:"handler"`
	Tracker TrackerConfig `env:"TRACKER" yaml:"tracker" json:"tracker"`
}

// HandlerConfig controls how the error handler shapes responses.
type HandlerConfig struct {
	// IncludeBacktrace includes captured stack traces in error
	// responses. Enable only in development; backtraces leak internal
	// structure.
	IncludeBacktrace bool `env:"INCLUDE_BACKTRACE" envDefault:"false" yaml:"include_backtrace" json:"include_backtrace"`

	// IncludeSource includes the underlying cause string in error
	// responses when one is present.
	IncludeSource bool `env:"INCLUDE_SOURCE" envDefault:"false" yaml:"include_source" json:"include_source"`

	// CodeOverrides maps canonical error codes to the code string
	// presented on the wire. Keys must be registered codes. Map fields
	// cannot be set from environment variables; provide overrides
	// through the config file.
	CodeOverrides map[string]string `yaml:"code_overrides" json:"code_overrides"`
}

// TrackerConfig controls the runtime error tracker.
type TrackerConfig struct {
	// Capacity bounds the number of retained entries. Older entries
	// are evicted when the bound is exceeded.
	Capacity int `env:"CAPACITY" envDefault:"100" yaml:"capacity" json:"capacity"`

	// InstallCrashCapture registers the tracker as the process-wide
	// panic capture target at startup.
	InstallCrashCapture bool `env:"CRASH_CAPTURE" envDefault:"true" yaml:"crash_capture" json:"crash_capture"`
}

// Validate implements [Validator].
func (c *ErrorsConfig) Validate() error {
	if c.Tracker.Capacity < 1 {
		return lderr.New(lderr.Validation("tracker.capacity",
			fmt.Sprintf("must be at least 1, got %d", c.Tracker.Capacity)))
	}
	for canonical, external := range c.Handler.CodeOverrides {
		if !lderr.Code(canonical).Valid() {
			return lderr.New(lderr.ValidationValue("handler.code_overrides",
				"unknown canonical error code", canonical))
		}
		if external == "" {
			return lderr.New(lderr.ValidationValue("handler.code_overrides",
				"override code must not be empty", canonical))
		}
	}
	return nil
}

// Options translates the handler configuration into handler options.
func (c HandlerConfig) Options() []lderr.HandlerOption {
	opts := []lderr.HandlerOption{
		lderr.WithBacktrace(c.IncludeBacktrace),
		lderr.WithSource(c.IncludeSource),
	}
	for canonical, external := range c.CodeOverrides {
		opts = append(opts, lderr.WithErrorCode(lderr.Code(canonical), external))
	}
	return opts
}
