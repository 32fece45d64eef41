package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Alumni tracks a graduated student. A student may become alumni at most once,
// and only after reaching graduated status.
type Alumni struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID      uint           `gorm:"uniqueIndex;not null" json:"student_id"` // 1:1 with Student
	GraduationDate time.Time      `gorm:"not null" json:"graduation_date"`        // ≤ today, within the last 10 years
	ContactEmail   string         `gorm:"type:varchar(254)" json:"contact_email"`
	Employment     datatypes.JSON `gorm:"type:jsonb" json:"employment,omitempty"` // Employer, position, location

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT" json:"student,omitempty"`
}

// TableName specifies the table name for Alumni
func (Alumni) TableName() string {
	return "alumni"
}
