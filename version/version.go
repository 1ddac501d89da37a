// Package version implements the version validity checks and precedence
// ordering used when two sides of a merge disagree on a version value.
//
// Two validity modes exist:
//
//   - Strict: only an exact release, MAJOR.MINOR.PATCH, with nothing else.
//   - Permissive: any single semantic version (prerelease and build metadata
//     allowed, optional "v" prefix, partial versions such as "1.2") or any
//     version range expression ("^1.2.3", "~1.2", ">=1.0.0 <2.0.0", "1.x").
//
// Ordering follows semantic versioning 2.0.0 precedence and is delegated to
// github.com/Masterminds/semver/v3. Ranges are ordered by the first version
// bound they mention; that ordering is advisory and carries no guarantee of
// being meaningful across arbitrary range expressions.
package version

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Mode selects which version grammar counts as valid.
type Mode int

const (
	// Strict accepts only MAJOR.MINOR.PATCH made of decimal digits.
	Strict Mode = iota
	// Permissive accepts prereleases, build metadata and ranges.
	Permissive
)

// String returns "strict" or "permissive".
func (m Mode) String() string {
	if m == Permissive {
		return "permissive"
	}
	return "strict"
}

// ErrInvalidVersion is wrapped by every ParseError.
var ErrInvalidVersion = errors.New("invalid version")

// releasePattern is the whole strict grammar.
var releasePattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// boundPattern finds the first version bound inside a range expression.
// Wildcard components are captured so they can be read as zero.
var boundPattern = regexp.MustCompile(
	`v?(\d+|[xX*])(?:\.(\d+|[xX*]))?(?:\.(\d+|[xX*]))?(?:-([0-9A-Za-z.-]+))?`,
)

// ParseError reports a string that is not a version under the given mode.
type ParseError struct {
	Version string
	Mode    Mode
	Message string
}

func (e *ParseError) Error() string {
	return "bad " + e.Mode.String() + " version " + strconv.Quote(e.Version) + ": " + e.Message
}

// Unwrap lets callers match ErrInvalidVersion with errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrInvalidVersion
}

// Parsed is a candidate that passed validation.
type Parsed struct {
	// Raw is the input exactly as given.
	Raw string
	// IsRange is true when Raw is a range expression rather than one version.
	IsRange bool
	// Version is the value used for ordering. For ranges this is the first
	// bound mentioned in the expression.
	Version *semver.Version
	// Constraints is set only for ranges.
	Constraints *semver.Constraints
}

// IsValid reports whether candidate is a usable version under mode.
// Anything that is not a string is never valid.
func IsValid(candidate any, mode Mode) bool {
	s, ok := candidate.(string)
	if !ok {
		return false
	}
	_, err := Parse(s, mode)
	return err == nil
}

// Parse validates s under mode and returns its parsed form.
func Parse(s string, mode Mode) (Parsed, error) {
	if mode == Permissive {
		return parsePermissive(s)
	}
	return parseStrict(s)
}

func parseStrict(s string) (Parsed, error) {
	m := releasePattern.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, &ParseError{Version: s, Mode: Strict, Message: "want MAJOR.MINOR.PATCH"}
	}

	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return Parsed{}, &ParseError{Version: s, Mode: Strict, Message: "component out of range"}
		}
		parts[i] = n
	}

	return Parsed{
		Raw:     s,
		Version: semver.New(parts[0], parts[1], parts[2], "", ""),
	}, nil
}

func parsePermissive(s string) (Parsed, error) {
	if strings.TrimSpace(s) == "" {
		return Parsed{}, &ParseError{Version: s, Mode: Permissive, Message: "empty"}
	}

	if v, err := semver.NewVersion(s); err == nil {
		return Parsed{Raw: s, Version: v}, nil
	}

	c, err := semver.NewConstraint(s)
	if err != nil {
		return Parsed{}, &ParseError{Version: s, Mode: Permissive, Message: err.Error()}
	}

	return Parsed{
		Raw:         s,
		IsRange:     true,
		Version:     firstBound(s),
		Constraints: c,
	}, nil
}

// firstBound extracts the first version mentioned in a range expression.
// Wildcards read as zero, so "1.x" orders like "1.0.0" and "*" like "0.0.0".
func firstBound(expr string) *semver.Version {
	m := boundPattern.FindStringSubmatch(expr)
	if m == nil {
		return semver.New(0, 0, 0, "", "")
	}

	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err == nil {
			parts[i] = n
		}
	}

	v, err := semver.NewVersion(semver.New(parts[0], parts[1], parts[2], m[4], "").String())
	if err != nil {
		return semver.New(parts[0], parts[1], parts[2], "", "")
	}
	return v
}
