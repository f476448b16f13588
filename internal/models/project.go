package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Status      string    `gorm:"not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`

	// The whole column/template/milestone tree, rewritten as one unit on
	// every mutation.
	Document datatypes.JSON `gorm:"type:jsonb"`

	// Bumped on each save; stale writers are rejected.
	Version uint `gorm:"not null;default:0"`
}
