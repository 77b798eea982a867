package processing

import "fmt"

// Phase is the coarse state of a Pipeline.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseSucceeded
	PhaseFailed
	PhaseCancelled
)

var phaseNames = [...]string{"idle", "running", "succeeded", "failed", "cancelled"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Status is a published pipeline state. Which fields are meaningful
// depends on Phase:
//
//	Running:   Progress, Step, TotalSteps
//	Succeeded: OutputURI, Message
//	Failed:    Message, CanRetry
type Status struct {
	Phase      Phase
	Progress   float64
	Step       Step
	TotalSteps int
	OutputURI  string
	Message    string
	CanRetry   bool
}

// Done reports whether the run has ended.
func (s Status) Done() bool {
	return s.Phase == PhaseSucceeded || s.Phase == PhaseFailed || s.Phase == PhaseCancelled
}
