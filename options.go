package semvermerge

import (
	"context"
	"fmt"
	"log/slog"
)

// Option configures a Plugin.
type Option func(*pluginConfig) error

// pluginConfig holds construction-time settings.
type pluginConfig struct {
	cfg Config

	// logger is the structured logger for debug/warn output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithConfig replaces the whole starting configuration.
func WithConfig(cfg Config) Option {
	return func(c *pluginConfig) error {
		c.cfg = cfg
		return nil
	}
}

// WithStrict selects exact-release validation (true) or permissive
// validation allowing prereleases and ranges (false).
func WithStrict(strict bool) Option {
	return func(c *pluginConfig) error {
		c.cfg.Strict = strict
		return nil
	}
}

// WithFallback sets the fallback action.
func WithFallback(a FallbackAction) Option {
	return func(c *pluginConfig) error {
		c.cfg.Fallback = a
		return nil
	}
}

// WithPreferValid enables or disables the prefer-valid-side rule.
func WithPreferValid(prefer bool) Option {
	return func(c *pluginConfig) error {
		c.cfg.PreferValid = prefer
		return nil
	}
}

// WithPreferRange sets the reserved preferRange option.
func WithPreferRange(prefer bool) Option {
	return func(c *pluginConfig) error {
		c.cfg.PreferRange = prefer
		return nil
	}
}

// WithWorkspacePattern sets the reserved workspace pattern.
func WithWorkspacePattern(pattern string) Option {
	return func(c *pluginConfig) error {
		c.cfg.WorkspacePattern = pattern
		return nil
	}
}

// WithLogger sets a structured logger for plugin diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	p, err := semvermerge.New(semvermerge.WithLogger(slog.Default()))
func WithLogger(l *slog.Logger) Option {
	return func(c *pluginConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration before the plugin is built.
// Unknown fallback actions are rejected here rather than per call.
func (c *pluginConfig) validate() error {
	if !c.cfg.Fallback.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownFallback, string(c.cfg.Fallback))
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *pluginConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newPluginConfig applies opts over DefaultConfig and validates the result.
func newPluginConfig(opts ...Option) (*pluginConfig, error) {
	c := &pluginConfig{cfg: DefaultConfig()}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}
