package model

import (
	"time"

	"gorm.io/gorm"
)

// Class represents an admitted cohort (batch) of a program, identified by intake year
type Class struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ProgramID uint           `gorm:"not null;index:idx_classes_program_batch,unique" json:"program_id"`
	BatchYear int            `gorm:"not null;index:idx_classes_program_batch,unique" json:"batch_year"` // 2000..currentYear+5

	// Relationships
	Program  Program   `gorm:"foreignKey:ProgramID;constraint:OnDelete:RESTRICT" json:"program,omitempty"`
	Students []Student `gorm:"foreignKey:ClassID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Class
func (Class) TableName() string {
	return "classes"
}
