package model

import (
	"time"

	"gorm.io/gorm"
)

// Department represents an academic department (e.g., Computer Science)
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	HeadID    *uint          `gorm:"index" json:"head_id,omitempty"` // Optional head of department

	// Relationships
	Head     *Person   `gorm:"foreignKey:HeadID;constraint:OnDelete:SET NULL" json:"head,omitempty"`
	Programs []Program `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"programs,omitempty"`
	Faculty  []Faculty `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "departments"
}
