package model

import (
	"time"

	"gorm.io/gorm"
)

// Faculty represents the employment record of a teaching staff member
type Faculty struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	PersonID     uint           `gorm:"uniqueIndex;not null" json:"person_id"` // 1:1 with Person
	Designation  string         `gorm:"type:varchar(50);not null" json:"designation"`
	DepartmentID uint           `gorm:"not null;index" json:"department_id"`
	JoiningDate  time.Time      `gorm:"not null" json:"joining_date"` // Never in the future

	// Relationships
	Person      Person             `gorm:"foreignKey:PersonID;constraint:OnDelete:RESTRICT" json:"person,omitempty"`
	Department  Department         `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department,omitempty"`
	Allocations []CourseAllocation `gorm:"foreignKey:FacultyID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Faculty
func (Faculty) TableName() string {
	return "faculty"
}
