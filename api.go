// Package semvermerge resolves a conflicting version value during a
// three-way merge.
//
// Given the "ours" and "theirs" values of one field, a strategy decides
// which survives using semantic version precedence, and falls back to a
// configured action when neither side, or only one, is a valid version.
//
// # Strategies
//
//	| Key           | Behavior                                   | ours vs theirs    | Result |
//	|---------------|--------------------------------------------|-------------------|--------|
//	| semver-max    | higher valid version                       | 1.2.3 vs 1.3.0    | 1.3.0  |
//	| semver-min    | lower valid version                        | 2.0.0 vs 2.1.0    | 2.0.0  |
//	| semver-ours   | ours if valid, else preferValid / fallback | 1.2.3 vs banana   | 1.2.3  |
//	| semver-theirs | theirs if valid, else preferValid/fallback | foo vs 2.0.0      | 2.0.0  |
//
// # Outcomes
//
// Every strategy returns an Outcome: StatusOK with one of the two inputs,
// StatusContinue to defer to the host's next strategy, or StatusFail with
// ReasonNoValidSemver. Invalid or missing values are ordinary inputs and
// never produce a Go error.
//
// # Quick Start
//
// Strategies are plain functions over an explicit Config:
//
//	out := semvermerge.Max("1.2.3", "1.3.0", semvermerge.DefaultConfig())
//	// out.Status == semvermerge.StatusOK, out.Value == "1.3.0"
//
// Hosts that register strategies by name use a Plugin:
//
//	p, err := semvermerge.New(semvermerge.WithStrict(false))
//	fallback := "error"
//	p.Init(semvermerge.PartialConfig{Fallback: &fallback})
//	out, err := p.Resolve(semvermerge.StrategyMin, "1.2.3", "1.2.3-beta.1")
//
// # Thread Safety
//
// Strategies and Config are values with no shared state. Plugin is safe
// for concurrent use; see Plugin for how Init interacts with resolutions.
package semvermerge

import "fmt"

// Resolve runs the strategy registered under name with an explicit cfg.
// Unknown fallback actions in cfg behave as FallbackContinue.
func Resolve(name string, ours, theirs any, cfg Config) (Outcome, error) {
	fn, ok := Lookup(name)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return fn(ours, theirs, cfg.Normalize()), nil
}
