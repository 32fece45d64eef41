package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents an individual academic course (e.g., CS101)
type Course struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Code           string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"` // Natural key, stored upper-case, immutable
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	CreditHours    int            `gorm:"not null" json:"credit_hours"` // 1..6
	PrerequisiteID *uint          `gorm:"index" json:"prerequisite_id,omitempty"`
	Description    string         `gorm:"type:text" json:"description"`

	// Relationships
	Prerequisite *Course            `gorm:"foreignKey:PrerequisiteID;constraint:OnDelete:SET NULL" json:"prerequisite,omitempty"`
	Allocations  []CourseAllocation `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}
