package semvermerge

import "fmt"

// Status tags the shape of an Outcome.
type Status int

const (
	// StatusOK means a value was selected.
	StatusOK Status = iota
	// StatusContinue defers to the next strategy in the host's chain.
	StatusContinue
	// StatusFail stops resolution with a reason.
	StatusFail
)

// String returns "ok", "continue" or "fail".
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusContinue:
		return "continue"
	case StatusFail:
		return "fail"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ReasonNoValidSemver is the only failure reason the engine produces.
const ReasonNoValidSemver = "No valid semver found"

// Outcome is the result of running a strategy on one conflict.
//
// Value is set only for StatusOK and is always one of the two candidates
// exactly as supplied. Reason is set only for StatusFail.
type Outcome struct {
	Status Status
	Value  any
	Reason string
}

// OK selects value.
func OK(value any) Outcome {
	return Outcome{Status: StatusOK, Value: value}
}

// Continue defers the decision.
func Continue() Outcome {
	return Outcome{Status: StatusContinue}
}

// Fail stops resolution with reason.
func Fail(reason string) Outcome {
	return Outcome{Status: StatusFail, Reason: reason}
}

// String renders the outcome for logs and CLI output.
func (o Outcome) String() string {
	switch o.Status {
	case StatusOK:
		return fmt.Sprintf("ok(%v)", o.Value)
	case StatusFail:
		return "fail(" + o.Reason + ")"
	default:
		return o.Status.String()
	}
}
