package model

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus represents a student's registration status in an allocation
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
)

// Enrollment registers a student into a course allocation
type Enrollment struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	StudentID    uint             `gorm:"not null;index:idx_enrollments_key,unique" json:"student_id"`
	AllocationID uint             `gorm:"not null;index:idx_enrollments_key,unique" json:"allocation_id"`
	Status       EnrollmentStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Relationships
	Student    Student          `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"student,omitempty"`
	Allocation CourseAllocation `gorm:"foreignKey:AllocationID;constraint:OnDelete:RESTRICT" json:"allocation,omitempty"`
	Result     *Result          `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"result,omitempty"`
}

// TableName specifies the table name for Enrollment
func (Enrollment) TableName() string {
	return "enrollments"
}

// Result is the final outcome of one enrollment
type Result struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	EnrollmentID  uint           `gorm:"uniqueIndex;not null" json:"enrollment_id"` // 1:1 with Enrollment
	CourseGPA     float64        `gorm:"not null" json:"course_gpa"`                // 0..4
	ObtainedMarks float64        `gorm:"not null" json:"obtained_marks"`            // 0..100

	// Relationships
	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"enrollment,omitempty"`
}

// TableName specifies the table name for Result
func (Result) TableName() string {
	return "results"
}

// Transcript is a per-student, per-semester summary record.
// The semester's program must equal the student's program.
type Transcript struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID    uint           `gorm:"not null;index:idx_transcripts_key,unique" json:"student_id"`
	SemesterID   uint           `gorm:"not null;index:idx_transcripts_key,unique" json:"semester_id"`
	TotalCredits int            `gorm:"not null" json:"total_credits"` // 0..30
	SemesterGPA  float64        `gorm:"not null" json:"semester_gpa"`  // 0..4

	// Relationships
	Student  Student  `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"student,omitempty"`
	Semester Semester `gorm:"foreignKey:SemesterID;constraint:OnDelete:RESTRICT" json:"semester,omitempty"`
}

// TableName specifies the table name for Transcript
func (Transcript) TableName() string {
	return "transcripts"
}

// Review is a student's feedback on a completed course allocation
type Review struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	EnrollmentID uint           `gorm:"uniqueIndex;not null" json:"enrollment_id"`
	Rating       int            `gorm:"not null" json:"rating"` // 1..5
	Comments     string         `gorm:"type:text" json:"comments"`

	// Relationships
	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"enrollment,omitempty"`
}

// TableName specifies the table name for Review
func (Review) TableName() string {
	return "reviews"
}
