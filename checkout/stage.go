package checkout

// Stage is where a Wizard currently sits. Failed behaves like Payment with
// an error attached; Succeeded has already been reset to an empty Contact
// form and only awaits dismissal.
type Stage int

const (
	StageContact Stage = iota
	StagePayment
	StageSubmitting
	StageSucceeded
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageContact:
		return "contact"
	case StagePayment:
		return "payment"
	case StageSubmitting:
		return "submitting"
	case StageSucceeded:
		return "succeeded"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step is the form page the registrant sees underneath the stage.
func (s Stage) Step() int {
	switch s {
	case StagePayment, StageSubmitting, StageFailed:
		return 2
	default:
		return 1
	}
}

func (s Stage) acceptsPayment() bool {
	return s == StagePayment || s == StageFailed
}
