package events

import "time"

const LeaveLifecycleTopic = "ooo.leave.lifecycle.v1"

const (
	LeaveSubmitted = "leave_request.submitted"
	LeaveCanceled  = "leave_request.canceled"
	LeaveApproved  = "leave_request.approved"
	LeaveRejected  = "leave_request.rejected"
)

// LeaveLifecycleEvent is published for every leave request status change.
// AbsenceDays is only set on approval.
type LeaveLifecycleEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id,omitempty"`
	LeaveRequestID    string    `json:"leave_request_id"`
	EmployeeID        string    `json:"employee_id"`
	ApprovalRequestID string    `json:"approval_request_id,omitempty"`
	ApproverID        string    `json:"approver_id,omitempty"`
	Status            string    `json:"status"`
	AbsenceDays       int       `json:"absence_days,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}
