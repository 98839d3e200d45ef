package domain

// Role is the capacity in which an actor drives a transition.
type Role string

const (
	RoleRenter   Role = "renter"
	RoleProvider Role = "provider"
	RoleSystem   Role = "system"
	RoleAdmin    Role = "admin"
)

// transitionTable is the single authoritative list of legal edges.
// The value is the role allowed to drive the edge; admins may drive any
// non-system edge regardless of ownership.
var transitionTable = map[OrderStatus]map[OrderStatus]Role{
	OrderStatusPending: {
		OrderStatusAccepted:  RoleProvider,
		OrderStatusRejected:  RoleProvider,
		OrderStatusCancelled: RoleRenter,
	},
	OrderStatusAccepted: {
		OrderStatusInProgress: RoleSystem,
		OrderStatusCancelled:  RoleRenter,
	},
	OrderStatusInProgress: {
		OrderStatusCompleted: RoleSystem,
	},
}

// ValidateTransition checks whether an order currently in `from` may move to
// `to` when driven by `role`.
//
// Returned values:
//   - noop=true, err=nil: the order is already in the target status and the
//     repeat is tolerated (at-least-once sweeper delivery, duplicate payment
//     callbacks, client retries of a cancel). Callers must leave the order
//     untouched and report success.
//   - noop=false, err=nil: the edge is legal for the role.
//   - err != nil: ErrInvalidTransition (edge not in the table, or a repeated
//     accept/reject) or ErrForbidden (legal edge, wrong role).
//
// Re-accepting or re-rejecting an order that is no longer PENDING is always
// an error rather than an idempotent no-op: those are provider decisions and
// a silent success would hide a consistency problem.
func ValidateTransition(from, to OrderStatus, role Role) (noop bool, err error) {
	if from == to {
		if to == OrderStatusAccepted || to == OrderStatusRejected {
			return false, NewInvalidTransition(from, to)
		}
		return true, nil
	}

	allowed, ok := transitionTable[from][to]
	if !ok {
		return false, NewInvalidTransition(from, to)
	}
	if role == allowed {
		return false, nil
	}
	if role == RoleAdmin && allowed != RoleSystem {
		return false, nil
	}
	return false, ErrForbidden
}

// CanTransition reports whether the edge exists at all, ignoring roles.
func CanTransition(from, to OrderStatus) bool {
	_, ok := transitionTable[from][to]
	return ok
}
