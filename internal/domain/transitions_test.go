package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition_LegalEdges(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		role Role
	}{
		{"provider accepts pending", OrderStatusPending, OrderStatusAccepted, RoleProvider},
		{"provider rejects pending", OrderStatusPending, OrderStatusRejected, RoleProvider},
		{"renter cancels pending", OrderStatusPending, OrderStatusCancelled, RoleRenter},
		{"system starts accepted", OrderStatusAccepted, OrderStatusInProgress, RoleSystem},
		{"renter cancels accepted", OrderStatusAccepted, OrderStatusCancelled, RoleRenter},
		{"system completes in-progress", OrderStatusInProgress, OrderStatusCompleted, RoleSystem},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			noop, err := ValidateTransition(tc.from, tc.to, tc.role)
			assert.NoError(t, err)
			assert.False(t, noop)
		})
	}
}

func TestValidateTransition_IllegalEdges(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		role Role
	}{
		{"pending cannot start directly", OrderStatusPending, OrderStatusInProgress, RoleSystem},
		{"pending cannot complete", OrderStatusPending, OrderStatusCompleted, RoleSystem},
		{"in-progress cannot cancel", OrderStatusInProgress, OrderStatusCancelled, RoleRenter},
		{"completed is terminal", OrderStatusCompleted, OrderStatusInProgress, RoleSystem},
		{"rejected is terminal", OrderStatusRejected, OrderStatusAccepted, RoleProvider},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusAccepted, RoleProvider},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateTransition(tc.from, tc.to, tc.role)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			var ite *InvalidTransitionError
			if assert.True(t, errors.As(err, &ite)) {
				assert.Equal(t, tc.from, ite.From)
				assert.Equal(t, tc.to, ite.To)
			}
		})
	}
}

func TestValidateTransition_RoleEnforcement(t *testing.T) {
	// Renter may not accept their own request.
	_, err := ValidateTransition(OrderStatusPending, OrderStatusAccepted, RoleRenter)
	assert.ErrorIs(t, err, ErrForbidden)

	// Provider may not cancel on behalf of the renter.
	_, err = ValidateTransition(OrderStatusPending, OrderStatusCancelled, RoleProvider)
	assert.ErrorIs(t, err, ErrForbidden)

	// Nobody but the system drives payment and completion edges, admins included.
	_, err = ValidateTransition(OrderStatusAccepted, OrderStatusInProgress, RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin bypasses ownership on provider/renter edges.
	noop, err := ValidateTransition(OrderStatusPending, OrderStatusRejected, RoleAdmin)
	assert.NoError(t, err)
	assert.False(t, noop)
}

func TestValidateTransition_Idempotence(t *testing.T) {
	// Same-target repeats tolerated for sweeper and payment retries.
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled, OrderStatusInProgress} {
		noop, err := ValidateTransition(s, s, RoleSystem)
		assert.NoError(t, err, "repeat of %s", s)
		assert.True(t, noop, "repeat of %s", s)
	}

	// Re-accept and re-reject are consistency errors, not no-ops.
	_, err := ValidateTransition(OrderStatusAccepted, OrderStatusAccepted, RoleProvider)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = ValidateTransition(OrderStatusRejected, OrderStatusRejected, RoleProvider)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanTransition_TerminalStatesHaveNoEdges(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusAccepted, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusRejected, OrderStatusCancelled,
	}
	for _, from := range all {
		for _, to := range all {
			if from.IsTerminal() {
				assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
			}
		}
	}
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusAccepted))
}

func TestOrderStatus_Helpers(t *testing.T) {
	assert.True(t, OrderStatusAccepted.IsBlocking())
	assert.True(t, OrderStatusInProgress.IsBlocking())
	assert.False(t, OrderStatusPending.IsBlocking())
	assert.False(t, OrderStatusCompleted.IsBlocking())

	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusRejected.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusInProgress.IsTerminal())
}
