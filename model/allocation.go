package model

import (
	"time"

	"gorm.io/gorm"
)

// AllocationStatus represents the teaching status of a course allocation
type AllocationStatus string

const (
	AllocationStatusOngoing   AllocationStatus = "ongoing"
	AllocationStatusCompleted AllocationStatus = "completed"
	AllocationStatusCancelled AllocationStatus = "cancelled"
)

// CourseAllocation assigns a faculty member to teach a course in a given session
type CourseAllocation struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
	FacultyID uint             `gorm:"not null;index:idx_allocations_key,unique" json:"faculty_id"`
	CourseID  uint             `gorm:"not null;index:idx_allocations_key,unique" json:"course_id"`
	Session   string           `gorm:"type:varchar(50);not null;index:idx_allocations_key,unique" json:"session"` // e.g., "Fall 2024"
	Status    AllocationStatus `gorm:"type:varchar(20);default:'ongoing'" json:"status"`

	// Relationships
	Faculty     Faculty      `gorm:"foreignKey:FacultyID;constraint:OnDelete:RESTRICT" json:"faculty,omitempty"`
	Course      Course       `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT" json:"course,omitempty"`
	Lectures    []Lecture    `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"-"`
	Assessments []Assessment `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:AllocationID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for CourseAllocation
func (CourseAllocation) TableName() string {
	return "course_allocations"
}

// Lecture represents one delivered lecture within a course allocation
type Lecture struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AllocationID uint           `gorm:"not null;index:idx_lectures_allocation_number,unique" json:"allocation_id"`
	Number       int            `gorm:"not null;index:idx_lectures_allocation_number,unique" json:"number"`
	Venue        string         `gorm:"type:varchar(100)" json:"venue"`
	StartTime    time.Time      `gorm:"not null" json:"start_time"`
	EndTime      time.Time      `gorm:"not null" json:"end_time"` // Must be after StartTime, at most 4h later

	// Relationships
	Allocation  CourseAllocation `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"allocation,omitempty"`
	Attendances []Attendance     `gorm:"foreignKey:LectureID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Lecture
func (Lecture) TableName() string {
	return "lectures"
}
