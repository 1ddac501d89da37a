package semvermerge

import "errors"

// Sentinel errors. Invalid candidates are never errors; these cover
// misuse of the plugin surface only.
var (
	// ErrUnknownStrategy indicates a strategy key that is not registered.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownFallback indicates a fallback action outside
	// ours, theirs, continue and error.
	ErrUnknownFallback = errors.New("unknown fallback action")
)
