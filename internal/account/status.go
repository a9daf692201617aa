package account

// Status is the membership status shared by managers, employers and season
// workers. The four values are stored as-is in the account_status column.
type Status string

const (
	StatusActive        Status = "Active"
	StatusActivePending Status = "ActivePending"
	StatusCancel        Status = "Cancel"
	StatusCancelPending Status = "CancelPending"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusActivePending, StatusCancel, StatusCancelPending:
		return true
	default:
		return false
	}
}

// Cancelling reports whether the account is in or past the cancellation flow.
func (s Status) Cancelling() bool {
	return s == StatusCancel || s == StatusCancelPending
}
