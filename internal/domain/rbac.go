package domain

// EnforceRequest asks whether an employee holding Position may perform
// Action on Resource.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Position   string `json:"position" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
