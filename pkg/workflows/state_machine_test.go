package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMachine() *StateMachine {
	return NewStateMachine(map[string][]string{
		"PENDING":     {"IN_PROGRESS"},
		"IN_PROGRESS": {"VERIFIED", "REJECTED"},
		"VERIFIED":    {},
		"REJECTED":    {},
	})
}

func TestCanTransition(t *testing.T) {
	sm := newTestMachine()

	assert.True(t, sm.CanTransition("PENDING", "IN_PROGRESS"))
	assert.True(t, sm.CanTransition("IN_PROGRESS", "VERIFIED"))
	assert.True(t, sm.CanTransition("IN_PROGRESS", "REJECTED"))

	assert.False(t, sm.CanTransition("PENDING", "VERIFIED"))
	assert.False(t, sm.CanTransition("VERIFIED", "PENDING"))
	assert.False(t, sm.CanTransition("REJECTED", "IN_PROGRESS"))
	assert.False(t, sm.CanTransition("PENDING", "PENDING"))
}

func TestCanTransitionUnknownState(t *testing.T) {
	sm := newTestMachine()
	assert.False(t, sm.CanTransition("ARCHIVED", "PENDING"))
	assert.False(t, sm.CanTransition("PENDING", "ARCHIVED"))
}

func TestGetAllowedTransitions(t *testing.T) {
	sm := newTestMachine()

	assert.Equal(t, []string{"IN_PROGRESS"}, sm.GetAllowedTransitions("PENDING"))
	assert.ElementsMatch(t, []string{"VERIFIED", "REJECTED"}, sm.GetAllowedTransitions("IN_PROGRESS"))
	assert.Empty(t, sm.GetAllowedTransitions("VERIFIED"))
	assert.Empty(t, sm.GetAllowedTransitions("ARCHIVED"))
}

func TestIsTerminal(t *testing.T) {
	sm := newTestMachine()

	assert.True(t, sm.IsTerminal("VERIFIED"))
	assert.True(t, sm.IsTerminal("REJECTED"))
	assert.False(t, sm.IsTerminal("PENDING"))
	assert.False(t, sm.IsTerminal("IN_PROGRESS"))
}
