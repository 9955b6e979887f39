package leave

type Status string

const (
	StatusNew       Status = "NEW"
	StatusSubmitted Status = "SUBMITTED"
	StatusCanceled  Status = "CANCELED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

var transitions = map[Status][]Status{
	StatusNew:       {StatusSubmitted},
	StatusCanceled:  {StatusSubmitted},
	StatusSubmitted: {StatusCanceled, StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
// Approved and rejected requests are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Editable reports whether the request details may still change.
func (s Status) Editable() bool {
	return s == StatusNew || s == StatusCanceled
}
