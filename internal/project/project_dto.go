package project

type CreateProjectRequest struct {
	ProjectType      string  `json:"project_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	ProjectManagerID string  `json:"project_manager_id"`
	Comment          *string `json:"comment"`
	Status           string  `json:"status"`
}

type UpdateProjectRequest struct {
	ProjectType      string  `json:"project_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	ProjectManagerID string  `json:"project_manager_id"`
	Comment          *string `json:"comment"`
	Status           string  `json:"status"`
}

type ListProjectsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Search string `form:"q" binding:"max=255"`
}

type ProjectResponse struct {
	ID               string  `json:"id"`
	ProjectType      string  `json:"project_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date,omitempty"`
	ProjectManagerID string  `json:"project_manager_id"`
	Comment          *string `json:"comment,omitempty"`
	Status           string  `json:"status"`
}
