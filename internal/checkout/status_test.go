package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusInitiated, StatusAwaitingCallback, true},
		{StatusInitiated, StatusFailed, true},
		{StatusInitiated, StatusPaid, false},
		{StatusAwaitingCallback, StatusVerifying, true},
		{StatusAwaitingCallback, StatusCancelled, true},
		{StatusAwaitingCallback, StatusPaid, false},
		{StatusVerifying, StatusVerifying, true},
		{StatusVerifying, StatusPaid, true},
		{StatusVerifying, StatusFailed, true},
		{StatusPaid, StatusFailed, false},
		{StatusPaid, StatusVerifying, false},
		{StatusFailed, StatusVerifying, false},
		{StatusCancelled, StatusVerifying, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusPaid.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusInitiated.IsTerminal())
	assert.False(t, StatusAwaitingCallback.IsTerminal())
	assert.False(t, StatusVerifying.IsTerminal())
}
