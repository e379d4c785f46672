package domain

// RequestStatus is the lifecycle of a money-movement request
// (deposit or withdrawal). Transitions are one-way: pending is the only
// state an admin action may leave, and approved/rejected are terminal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether a transition from s to next is allowed.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	return s == StatusPending && next.Terminal()
}
