package validation

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

type LeaveRequestInput struct {
	EmployeeID    string `json:"employee_id" validate:"required,uuid"`
	AbsenceReason string `json:"absence_reason" validate:"required,max=255"`
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Comment       string `json:"comment" validate:"max=1000"`
}

type ApprovalRequestInput struct {
	ApproverID     string `json:"approver_id" validate:"required,uuid"`
	LeaveRequestID string `json:"leave_request_id" validate:"required,uuid"`
	Comment        string `json:"comment" validate:"max=1000"`
}

type EmployeeInput struct {
	FullName           string `json:"full_name" validate:"required,max=255"`
	Subdivision        string `json:"subdivision" validate:"required,max=255"`
	Position           string `json:"position" validate:"required,position"`
	Status             string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	PeoplePartnerID    string `json:"people_partner_id" validate:"omitempty,uuid"`
	ProjectID          string `json:"project_id" validate:"omitempty,uuid"`
	OutOfOfficeBalance int    `json:"out_of_office_balance" validate:"gte=0"`
}

type ProjectInput struct {
	ProjectType      string `json:"project_type" validate:"required,max=255"`
	StartDate        string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ProjectManagerID string `json:"project_manager_id" validate:"required,uuid"`
	Comment          string `json:"comment" validate:"max=1000"`
	Status           string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}
