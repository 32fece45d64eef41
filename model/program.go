package model

import (
	"time"

	"gorm.io/gorm"
)

// Program represents a degree offering (e.g., CS-BS, EE-MS)
type Program struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Code           string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"` // Natural key, stored upper-case, immutable
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	TotalSemesters int            `gorm:"not null" json:"total_semesters"` // 1..12
	Fee            float64        `gorm:"default:0" json:"fee"`
	DepartmentID   uint           `gorm:"not null;index" json:"department_id"`

	// Relationships
	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department,omitempty"`
	Semesters  []Semester `gorm:"foreignKey:ProgramID;constraint:OnDelete:RESTRICT" json:"semesters,omitempty"`
	Classes    []Class    `gorm:"foreignKey:ProgramID;constraint:OnDelete:RESTRICT" json:"classes,omitempty"`
	Students   []Student  `gorm:"foreignKey:ProgramID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Program
func (Program) TableName() string {
	return "programs"
}
