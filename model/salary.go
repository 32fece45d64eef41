package model

import (
	"time"

	"gorm.io/gorm"
)

// Salary records one monthly payment to a person. One payment per person per month.
type Salary struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	PersonID    uint           `gorm:"not null;index:idx_salaries_key,unique" json:"person_id"`
	Year        int            `gorm:"not null;index:idx_salaries_key,unique" json:"year"`
	Month       int            `gorm:"not null;index:idx_salaries_key,unique" json:"month"` // 1..12
	Amount      float64        `gorm:"not null" json:"amount"`                              // > 0
	PaymentDate time.Time      `json:"payment_date"`

	// Relationships
	Person Person `gorm:"foreignKey:PersonID;constraint:OnDelete:RESTRICT" json:"person,omitempty"`
}

// TableName specifies the table name for Salary
func (Salary) TableName() string {
	return "salaries"
}
