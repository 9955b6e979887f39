package employee

import (
	"time"

	"out-of-office/internal/domain"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Employee struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FullName           string          `gorm:"size:255;not null"`
	Subdivision        string          `gorm:"size:255;not null"`
	Position           domain.Position `gorm:"type:varchar(255);not null"`
	Status             Status          `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	PeoplePartnerID    *uuid.UUID      `gorm:"type:uuid"`
	OutOfOfficeBalance int             `gorm:"not null;default:0"`
	ProjectID          *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Employee) TableName() string {
	return "employees"
}
