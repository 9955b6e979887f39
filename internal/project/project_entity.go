package project

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Project struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectType      string     `gorm:"size:255;not null"`
	StartDate        time.Time  `gorm:"type:date;not null"`
	EndDate          *time.Time `gorm:"type:date"`
	ProjectManagerID uuid.UUID  `gorm:"type:uuid;not null"`
	Comment          *string    `gorm:"type:text"`
	Status           Status     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Project) TableName() string {
	return "projects"
}
