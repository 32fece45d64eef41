package model

import (
	"time"

	"gorm.io/gorm"
)

// SemesterStatus represents the lifecycle status of a semester
type SemesterStatus string

const (
	SemesterStatusActive    SemesterStatus = "active"
	SemesterStatusInactive  SemesterStatus = "inactive"
	SemesterStatusCompleted SemesterStatus = "completed"
)

// Semester represents one numbered academic term of a program
type Semester struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ProgramID uint           `gorm:"not null;index:idx_semesters_program_number,unique" json:"program_id"`
	Number    int            `gorm:"not null;index:idx_semesters_program_number,unique" json:"number"` // 1..program.TotalSemesters
	Status    SemesterStatus `gorm:"type:varchar(20);default:'inactive'" json:"status"`
	Session   string         `gorm:"type:varchar(50)" json:"session"` // e.g., "Fall 2024"

	// Relationships
	Program Program          `gorm:"foreignKey:ProgramID;constraint:OnDelete:RESTRICT" json:"program,omitempty"`
	Details []SemesterDetail `gorm:"foreignKey:SemesterID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

// TableName specifies the table name for Semester
func (Semester) TableName() string {
	return "semesters"
}

// SemesterDetail assigns a course to a specific semester for a specific class.
// The class must belong to the same program as the semester.
type SemesterDetail struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	SemesterID uint           `gorm:"not null;index:idx_semester_details_key,unique" json:"semester_id"`
	CourseID   uint           `gorm:"not null;index:idx_semester_details_key,unique" json:"course_id"`
	ClassID    uint           `gorm:"not null;index:idx_semester_details_key,unique" json:"class_id"`

	// Relationships
	Semester Semester `gorm:"foreignKey:SemesterID;constraint:OnDelete:CASCADE" json:"semester,omitempty"`
	Course   Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT" json:"course,omitempty"`
	Class    Class    `gorm:"foreignKey:ClassID;constraint:OnDelete:RESTRICT" json:"class,omitempty"`
}

// TableName specifies the table name for SemesterDetail
func (SemesterDetail) TableName() string {
	return "semester_details"
}
