package model

import (
	"time"

	"gorm.io/gorm"
)

// StudentStatus represents the academic standing of a student
type StudentStatus string

const (
	StudentStatusEnrolled  StudentStatus = "enrolled"
	StudentStatusGraduated StudentStatus = "graduated"
	StudentStatusSuspended StudentStatus = "suspended"
	StudentStatusWithdrawn StudentStatus = "withdrawn"
)

// Student represents the academic record of an admitted student
type Student struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	PersonID  uint           `gorm:"uniqueIndex;not null" json:"person_id"` // 1:1 with Person
	ProgramID uint           `gorm:"not null;index" json:"program_id"`
	ClassID   uint           `gorm:"not null;index" json:"class_id"`
	Status    StudentStatus  `gorm:"type:varchar(20);default:'enrolled'" json:"status"`

	// Relationships
	Person      Person       `gorm:"foreignKey:PersonID;constraint:OnDelete:RESTRICT" json:"person,omitempty"`
	Program     Program      `gorm:"foreignKey:ProgramID;constraint:OnDelete:RESTRICT" json:"program,omitempty"`
	Class       Class        `gorm:"foreignKey:ClassID;constraint:OnDelete:RESTRICT" json:"class,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"-"`
	Transcripts []Transcript `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}
