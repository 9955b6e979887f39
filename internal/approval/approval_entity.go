package approval

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNew      Status = "NEW"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// CanTransitionTo reports whether a decision may move s to target. Only NEW
// approvals can be decided; APPROVED and REJECTED are terminal.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusNew && (target == StatusApproved || target == StatusRejected)
}

type ApprovalRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ApproverID     uuid.UUID  `gorm:"type:uuid;not null"`
	LeaveRequestID uuid.UUID  `gorm:"type:uuid;not null"`
	Status         Status     `gorm:"type:varchar(20);not null;default:'NEW'"`
	Comment        *string    `gorm:"type:text"`
	DecidedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ApprovalRequest) TableName() string {
	return "approval_requests"
}
