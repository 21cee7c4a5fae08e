package uploads

// Phase tracks a presigned upload through its lifecycle. The daemon itself is
// stateless between requests; clients report their phase and the server
// validates transitions.
type Phase string

const (
	PhaseSelecting    Phase = "SELECTING"
	PhaseURLRequested Phase = "URL_REQUESTED"
	PhaseUploading    Phase = "UPLOADING"
	PhaseConfirming   Phase = "CONFIRMING"
	PhaseDone         Phase = "DONE"
	PhaseError        Phase = "ERROR"
)

var phaseTransitions = map[Phase][]Phase{
	PhaseSelecting:    {PhaseURLRequested, PhaseError},
	PhaseURLRequested: {PhaseUploading, PhaseError},
	PhaseUploading:    {PhaseConfirming, PhaseError},
	PhaseConfirming:   {PhaseDone, PhaseError},
	PhaseDone:         {},
	PhaseError:        {PhaseSelecting},
}

// CanTransition reports whether moving from one phase to another is legal.
// DONE is terminal; ERROR is reachable from every live phase and resets to
// SELECTING.
func CanTransition(from, to Phase) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidPhase reports whether p is one of the known phases.
func ValidPhase(p Phase) bool {
	_, ok := phaseTransitions[p]
	return ok
}
