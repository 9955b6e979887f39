package domain

// Position is an employee's role label. The labels are stored verbatim, so
// only the recognised set below is accepted on write.
type Position string

const (
	PositionHRManager           Position = "HR Manager"
	PositionProjectManager      Position = "Project Manager"
	PositionDeveloper           Position = "Developer"
	PositionAccountant          Position = "Accountant"
	PositionMarketingSpecialist Position = "Marketing Specialist"
	PositionSalesManager        Position = "Sales Manager"
	PositionSalesSpecialist     Position = "Sales Specialist"
	PositionSupportSpecialist   Position = "Support Specialist"
)

var knownPositions = map[Position]struct{}{
	PositionHRManager:           {},
	PositionProjectManager:      {},
	PositionDeveloper:           {},
	PositionAccountant:          {},
	PositionMarketingSpecialist: {},
	PositionSalesManager:        {},
	PositionSalesSpecialist:     {},
	PositionSupportSpecialist:   {},
}

func (p Position) Valid() bool {
	_, ok := knownPositions[p]
	return ok
}

func (p Position) String() string {
	return string(p)
}
