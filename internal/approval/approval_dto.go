package approval

import "time"

type CreateApprovalRequest struct {
	ApproverID     string  `json:"approver_id"`
	LeaveRequestID string  `json:"leave_request_id"`
	Comment        *string `json:"comment"`
}

type RejectApprovalRequest struct {
	Reason string `json:"reason"`
}

type ListApprovalsQuery struct {
	Status         string `form:"status" binding:"omitempty,oneof=NEW APPROVED REJECTED"`
	ApproverID     string `form:"approver_id" binding:"omitempty,uuid"`
	LeaveRequestID string `form:"leave_request_id" binding:"omitempty,uuid"`
}

type ApprovalResponse struct {
	ID             string     `json:"id"`
	ApproverID     string     `json:"approver_id"`
	LeaveRequestID string     `json:"leave_request_id"`
	Status         string     `json:"status"`
	Comment        *string    `json:"comment,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
