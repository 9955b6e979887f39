package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	AbsenceReason string    `gorm:"size:255;not null"`
	StartDate     time.Time `gorm:"type:date;not null"`
	EndDate       time.Time `gorm:"type:date;not null"`
	Comment       *string   `gorm:"type:text"`
	Status        Status    `gorm:"type:varchar(20);not null;default:'NEW';index:idx_leave_requests_status"`
	Version       int       `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
