package semvermerge

import "github.com/albertocavalcante/go-semver-merge/version"

// Strategy decides one conflict between ours and theirs under cfg.
// Strategies are pure: they do no I/O and never modify their inputs.
type Strategy func(ours, theirs any, cfg Config) Outcome

var (
	_ Strategy = Max
	_ Strategy = Min
	_ Strategy = PreferOurs
	_ Strategy = PreferTheirs
)

// side is one candidate with its validity evaluated once.
type side struct {
	value  any
	parsed version.Parsed
	valid  bool
}

func newSide(value any, mode version.Mode) side {
	s := side{value: value}
	str, ok := value.(string)
	if !ok {
		return s
	}
	p, err := version.Parse(str, mode)
	if err != nil {
		return s
	}
	s.parsed = p
	s.valid = true
	return s
}

// Max picks the higher version when both sides are valid. Ties go to ours.
func Max(ours, theirs any, cfg Config) Outcome {
	return byPrecedence(ours, theirs, cfg, func(c int) bool { return c >= 0 })
}

// Min picks the lower version when both sides are valid. Ties go to ours.
func Min(ours, theirs any, cfg Config) Outcome {
	return byPrecedence(ours, theirs, cfg, func(c int) bool { return c <= 0 })
}

// byPrecedence selects ours when keepOurs accepts Compare(ours, theirs).
func byPrecedence(ours, theirs any, cfg Config, keepOurs func(int) bool) Outcome {
	mode := cfg.Mode()
	o, t := newSide(ours, mode), newSide(theirs, mode)

	if o.valid && t.valid {
		if keepOurs(version.Compare(o.parsed, t.parsed)) {
			return OK(ours)
		}
		return OK(theirs)
	}
	return resolveFallback(o, t, cfg)
}

// PreferOurs picks ours whenever it is valid.
func PreferOurs(ours, theirs any, cfg Config) Outcome {
	mode := cfg.Mode()
	o := newSide(ours, mode)
	if o.valid {
		return OK(ours)
	}
	return resolveFallback(o, newSide(theirs, mode), cfg)
}

// PreferTheirs picks theirs whenever it is valid.
func PreferTheirs(ours, theirs any, cfg Config) Outcome {
	mode := cfg.Mode()
	t := newSide(theirs, mode)
	if t.valid {
		return OK(theirs)
	}
	return resolveFallback(newSide(ours, mode), t, cfg)
}
