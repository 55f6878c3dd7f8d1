package workflows

// StateMachine enforces status transitions against a fixed transition table
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a state machine from a transition table. States
// mapped to an empty slice are terminal.
func NewStateMachine(transitions map[string][]string) *StateMachine {
	return &StateMachine{allowedTransitions: transitions}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}

// IsTerminal reports whether a status has no outgoing transitions
func (sm *StateMachine) IsTerminal(state string) bool {
	return len(sm.allowedTransitions[state]) == 0
}
