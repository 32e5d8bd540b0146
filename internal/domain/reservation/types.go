package reservation

// Status is the lifecycle state of a reservation.
//
//	pending --check-in--> present --check-out--> finalized (terminal)
//	pending --no-show---> absent  (terminal)
//
// Once finalized a reservation is immutable: no edit, no delete.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPresent   Status = "present"
	StatusAbsent    Status = "absent"
	StatusFinalized Status = "finalized"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPresent, StatusAbsent, StatusFinalized:
		return true
	default:
		return false
	}
}

// IsTerminal reports states that admit no further transition.
func (s Status) IsTerminal() bool {
	return s == StatusFinalized || s == StatusAbsent
}
