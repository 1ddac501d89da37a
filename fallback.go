package semvermerge

// ResolveFallback applies the prefer-valid rule and then the configured
// fallback action. Strategies reach it when valid versions alone could not
// decide; hosts may call it directly for the same decision.
func ResolveFallback(ours, theirs any, cfg Config) Outcome {
	mode := cfg.Mode()
	return resolveFallback(newSide(ours, mode), newSide(theirs, mode), cfg)
}

// resolveFallback reuses the validity the caller already computed.
// The prefer-valid check always runs before the fallback switch.
func resolveFallback(ours, theirs side, cfg Config) Outcome {
	if cfg.PreferValid && ours.valid != theirs.valid {
		if ours.valid {
			return OK(ours.value)
		}
		return OK(theirs.value)
	}

	switch cfg.Fallback {
	case FallbackOurs:
		return OK(ours.value)
	case FallbackTheirs:
		return OK(theirs.value)
	case FallbackError:
		return Fail(ReasonNoValidSemver)
	default:
		return Continue()
	}
}
