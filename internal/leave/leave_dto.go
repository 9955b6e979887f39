package leave

import "time"

type CreateLeaveRequest struct {
	EmployeeID    string  `json:"employee_id"`
	AbsenceReason string  `json:"absence_reason"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Comment       *string `json:"comment"`
}

type UpdateLeaveRequest struct {
	AbsenceReason string  `json:"absence_reason"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Comment       *string `json:"comment"`
}

type ListLeavesQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=NEW SUBMITTED CANCELED APPROVED REJECTED"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type LeaveResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	AbsenceReason string    `json:"absence_reason"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	AbsenceDays   int       `json:"absence_days"`
	Comment       *string   `json:"comment,omitempty"`
	Status        string    `json:"status"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
