package semvermerge

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Strategy keys advertised to hosts.
const (
	StrategyMax    = "semver-max"
	StrategyMin    = "semver-min"
	StrategyOurs   = "semver-ours"
	StrategyTheirs = "semver-theirs"
)

// ConfigKeys are the names under which a host may store this plugin's
// configuration block. All of them address the same options.
var ConfigKeys = []string{
	"git-json-resolver-semver",
	"json-merge-semver",
	"git-semver-resolver",
	"semver-merge-driver",
	"semver-conflict-resolver",
}

// NamedStrategy pairs a strategy with its registration key.
type NamedStrategy struct {
	Name     string
	Strategy Strategy
}

// registry is the ordered strategy table.
var registry = []NamedStrategy{
	{Name: StrategyMax, Strategy: Max},
	{Name: StrategyMin, Strategy: Min},
	{Name: StrategyOurs, Strategy: PreferOurs},
	{Name: StrategyTheirs, Strategy: PreferTheirs},
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, bool) {
	for _, ns := range registry {
		if ns.Name == name {
			return ns.Strategy, true
		}
	}
	return nil, false
}

// Plugin is the registration surface a conflict-resolution host consumes:
// an ordered strategy table plus a configuration that Init updates.
//
// Each resolution reads one configuration snapshot when it starts. Init
// swaps the snapshot atomically, so an Init racing with resolutions is
// memory-safe, but which snapshot those resolutions see is unspecified.
// Hosts should let Init complete before resolving conflicts that depend on it.
type Plugin struct {
	cfg    atomic.Pointer[Config]
	logger *slog.Logger
}

// New creates a Plugin starting from DefaultConfig with opts applied.
// An unknown fallback action is an error here.
func New(opts ...Option) (*Plugin, error) {
	pc, err := newPluginConfig(opts...)
	if err != nil {
		return nil, err
	}

	p := &Plugin{logger: pc.log()}
	cfg := pc.cfg
	p.cfg.Store(&cfg)
	return p, nil
}

// Strategies returns the registered strategies in a fixed order.
func (p *Plugin) Strategies() []NamedStrategy {
	out := make([]NamedStrategy, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the strategy registered under name.
func (p *Plugin) Lookup(name string) (Strategy, bool) {
	return Lookup(name)
}

// Config returns the current configuration snapshot.
func (p *Plugin) Config() Config {
	return *p.cfg.Load()
}

// Init merges update over the current configuration field by field.
// Fields update leaves unset keep their previous values. An unknown
// fallback action is logged and replaced by FallbackContinue.
func (p *Plugin) Init(update PartialConfig) Config {
	next := p.Config().Merge(update)
	if !next.Fallback.IsKnown() {
		p.logger.Warn("unknown fallback action, using continue",
			"fallback", string(next.Fallback))
		next = next.Normalize()
	}

	p.cfg.Store(&next)
	p.logger.Debug("semver plugin configured",
		"strict", next.Strict,
		"fallback", string(next.Fallback),
		"preferValid", next.PreferValid,
		"preferRange", next.PreferRange,
		"workspacePattern", next.WorkspacePattern)
	return next
}

// Resolve runs the strategy registered under name against the current
// configuration snapshot.
func (p *Plugin) Resolve(name string, ours, theirs any) (Outcome, error) {
	fn, ok := Lookup(name)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	cfg := p.Config()
	out := fn(ours, theirs, cfg)
	p.logger.Debug("semver conflict resolved",
		"strategy", name,
		"status", out.Status.String(),
		"strict", cfg.Strict)
	return out, nil
}

// Bind returns the strategy registered under name closed over the current
// configuration snapshot. Later Init calls do not affect it.
func (p *Plugin) Bind(name string) (func(ours, theirs any) Outcome, error) {
	fn, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	cfg := p.Config()
	return func(ours, theirs any) Outcome {
		return fn(ours, theirs, cfg)
	}, nil
}
