package employee

type CreateEmployeeRequest struct {
	FullName           string `json:"full_name"`
	Subdivision        string `json:"subdivision"`
	Position           string `json:"position"`
	Status             string `json:"status"`
	PeoplePartnerID    string `json:"people_partner_id"`
	ProjectID          string `json:"project_id"`
	OutOfOfficeBalance int    `json:"out_of_office_balance"`
}

// UpdateEmployeeRequest replaces every editable attribute of an employee.
type UpdateEmployeeRequest struct {
	FullName           string `json:"full_name"`
	Subdivision        string `json:"subdivision"`
	Position           string `json:"position"`
	Status             string `json:"status"`
	PeoplePartnerID    string `json:"people_partner_id"`
	ProjectID          string `json:"project_id"`
	OutOfOfficeBalance int    `json:"out_of_office_balance"`
}

type ListEmployeesQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Search string `form:"q" binding:"max=255"`
}

type EmployeeResponse struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	Subdivision        string `json:"subdivision"`
	Position           string `json:"position"`
	Status             string `json:"status"`
	PeoplePartnerID    string `json:"people_partner_id,omitempty"`
	ProjectID          string `json:"project_id,omitempty"`
	OutOfOfficeBalance int    `json:"out_of_office_balance"`
}
