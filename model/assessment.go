package model

import (
	"time"

	"gorm.io/gorm"
)

// AssessmentType categorizes an assessment
type AssessmentType string

const (
	AssessmentTypeQuiz       AssessmentType = "quiz"
	AssessmentTypeAssignment AssessmentType = "assignment"
	AssessmentTypeMidterm    AssessmentType = "midterm"
	AssessmentTypeFinal      AssessmentType = "final"
	AssessmentTypeProject    AssessmentType = "project"
)

// Assessment represents a graded activity within a course allocation.
// Names are unique per allocation, compared case-insensitively.
type Assessment struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AllocationID uint           `gorm:"not null;index" json:"allocation_id"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	Type         AssessmentType `gorm:"type:varchar(20);not null" json:"type"`
	Date         time.Time      `json:"date"`
	Weightage    float64        `gorm:"not null" json:"weightage"`   // (0,100]
	TotalMarks   float64        `gorm:"not null" json:"total_marks"` // (0,100]

	// Relationships
	Allocation CourseAllocation   `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"allocation,omitempty"`
	Checked    []AssessmentChecked `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Assessment
func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentChecked records a student's marked submission for an assessment
type AssessmentChecked struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	AssessmentID  uint           `gorm:"not null;index:idx_assessment_checked_key,unique" json:"assessment_id"`
	EnrollmentID  uint           `gorm:"not null;index:idx_assessment_checked_key,unique" json:"enrollment_id"`
	ObtainedMarks float64        `gorm:"not null" json:"obtained_marks"` // 0..assessment.TotalMarks

	// Relationships
	Assessment Assessment `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"assessment,omitempty"`
	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"enrollment,omitempty"`
}

// TableName specifies the table name for AssessmentChecked
func (AssessmentChecked) TableName() string {
	return "assessment_checked"
}

// Attendance records a student's presence in one lecture
type Attendance struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	LectureID    uint           `gorm:"not null;index:idx_attendance_key,unique" json:"lecture_id"`
	EnrollmentID uint           `gorm:"not null;index:idx_attendance_key,unique" json:"enrollment_id"`
	Present      bool           `gorm:"default:false" json:"present"`

	// Relationships
	Lecture    Lecture    `gorm:"foreignKey:LectureID;constraint:OnDelete:CASCADE" json:"lecture,omitempty"`
	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"enrollment,omitempty"`
}

// TableName specifies the table name for Attendance
func (Attendance) TableName() string {
	return "attendance"
}
