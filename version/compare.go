package version

import "slices"

// Compare orders two parsed versions by semantic version precedence.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
//
// Order:
//  1. MAJOR, MINOR, PATCH compared numerically
//  2. A prerelease sorts BEFORE the release it precedes
//  3. Prerelease identifiers compared dot by dot: digits-only numerically,
//     others lexically, digits-only before alphanumeric
//  4. Build metadata is ignored
//
// When either side is a range, its first bound stands in for it. Such
// results are best effort only.
func Compare(a, b Parsed) int {
	switch {
	case a.Version == nil && b.Version == nil:
		return 0
	case a.Version == nil:
		return -1
	case b.Version == nil:
		return 1
	}
	return a.Version.Compare(b.Version)
}

// CompareStrings parses both strings under mode and compares them.
func CompareStrings(a, b string, mode Mode) (int, error) {
	pa, err := Parse(a, mode)
	if err != nil {
		return 0, err
	}
	pb, err := Parse(b, mode)
	if err != nil {
		return 0, err
	}
	return Compare(pa, pb), nil
}

// Max returns the higher of two parsed versions. Ties go to a.
func Max(a, b Parsed) Parsed {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// Min returns the lower of two parsed versions. Ties go to a.
func Min(a, b Parsed) Parsed {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Sort sorts parsed versions in ascending order. Equal versions keep
// their relative order.
func Sort(versions []Parsed) {
	slices.SortStableFunc(versions, Compare)
}
