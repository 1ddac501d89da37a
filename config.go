package semvermerge

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-semver-merge/version"
)

// FallbackAction decides the outcome when no valid version settles a conflict.
type FallbackAction string

const (
	// FallbackOurs selects the ours candidate, valid or not.
	FallbackOurs FallbackAction = "ours"
	// FallbackTheirs selects the theirs candidate, valid or not.
	FallbackTheirs FallbackAction = "theirs"
	// FallbackContinue defers to the next strategy. This is the default.
	FallbackContinue FallbackAction = "continue"
	// FallbackError fails with ReasonNoValidSemver.
	FallbackError FallbackAction = "error"
)

// ParseFallback reads a fallback action name. Matching ignores case and
// surrounding whitespace.
func ParseFallback(s string) (FallbackAction, error) {
	a := FallbackAction(strings.ToLower(strings.TrimSpace(s)))
	if !a.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFallback, s)
	}
	return a, nil
}

// IsKnown reports whether a is one of the four fallback actions.
func (a FallbackAction) IsKnown() bool {
	switch a {
	case FallbackOurs, FallbackTheirs, FallbackContinue, FallbackError:
		return true
	}
	return false
}

// Config is the option set for one resolution. Strategies only read it.
type Config struct {
	// Strict accepts only MAJOR.MINOR.PATCH. When false, prereleases,
	// build metadata and ranges are valid too.
	Strict bool

	// Fallback is applied when no valid version decides the conflict.
	Fallback FallbackAction

	// PreferValid selects the only valid side when exactly one is valid,
	// before Fallback is consulted.
	PreferValid bool

	// PreferRange is reserved for merging into a range. It has no effect yet.
	PreferRange bool

	// WorkspacePattern is reserved for workspace-scoped rules such as
	// "workspaces:*". It has no effect on the strategies yet.
	WorkspacePattern string
}

// DefaultConfig returns strict validation, continue fallback and
// prefer-valid enabled.
func DefaultConfig() Config {
	return Config{
		Strict:      true,
		Fallback:    FallbackContinue,
		PreferValid: true,
	}
}

// Mode returns the validation mode selected by Strict.
func (c Config) Mode() version.Mode {
	if c.Strict {
		return version.Strict
	}
	return version.Permissive
}

// Normalize maps an empty or unknown fallback to FallbackContinue so the
// strategies stay total over any Config value.
func (c Config) Normalize() Config {
	if !c.Fallback.IsKnown() {
		c.Fallback = FallbackContinue
	}
	return c
}

// PartialConfig is a configuration update as a host supplies it.
// Nil fields are left unchanged by Merge.
type PartialConfig struct {
	Strict           *bool   `json:"strict,omitempty" yaml:"strict,omitempty"`
	Fallback         *string `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	PreferValid      *bool   `json:"preferValid,omitempty" yaml:"preferValid,omitempty"`
	PreferRange      *bool   `json:"preferRange,omitempty" yaml:"preferRange,omitempty"`
	WorkspacePattern *string `json:"workspacePattern,omitempty" yaml:"workspacePattern,omitempty"`
}

// Merge applies p over c field by field. Fallback names are lowered and
// trimmed but not validated here; see Normalize.
func (c Config) Merge(p PartialConfig) Config {
	if p.Strict != nil {
		c.Strict = *p.Strict
	}
	if p.Fallback != nil {
		c.Fallback = FallbackAction(strings.ToLower(strings.TrimSpace(*p.Fallback)))
	}
	if p.PreferValid != nil {
		c.PreferValid = *p.PreferValid
	}
	if p.PreferRange != nil {
		c.PreferRange = *p.PreferRange
	}
	if p.WorkspacePattern != nil {
		c.WorkspacePattern = *p.WorkspacePattern
	}
	return c
}

// IsEmpty reports whether p sets no field.
func (p PartialConfig) IsEmpty() bool {
	return p.Strict == nil && p.Fallback == nil && p.PreferValid == nil &&
		p.PreferRange == nil && p.WorkspacePattern == nil
}
