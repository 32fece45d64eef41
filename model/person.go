package model

import (
	"time"

	"gorm.io/gorm"
)

// PersonType distinguishes the institutional role a person record represents
type PersonType string

const (
	PersonTypeFaculty PersonType = "faculty"
	PersonTypeAdmin   PersonType = "admin"
	PersonTypeStudent PersonType = "student"
)

// Gender enum for person records
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Person represents any member of the institution (faculty, admin, student)
type Person struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	RegNo              string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"reg_no"` // Natural key, stored upper-case, immutable
	Name               string         `gorm:"type:varchar(100);not null" json:"name"`
	InstitutionalEmail string         `gorm:"type:varchar(254);uniqueIndex;not null" json:"institutional_email"`
	PersonalEmail      string         `gorm:"type:varchar(254)" json:"personal_email,omitempty"`
	NationalID         string         `gorm:"type:varchar(30)" json:"national_id"`
	Gender             Gender         `gorm:"type:varchar(10)" json:"gender"`
	DOB                time.Time      `gorm:"not null" json:"dob"`
	Phone              string         `gorm:"type:varchar(20)" json:"phone"`
	Type               PersonType     `gorm:"type:varchar(10);not null" json:"type"`
	UserID             *uint          `gorm:"index" json:"user_id,omitempty"` // Optional linked login account

	// Relationships
	User           *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Addresses      []Address       `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Qualifications []Qualification `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"qualifications,omitempty"`
	Salaries       []Salary        `gorm:"foreignKey:PersonID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for Person
func (Person) TableName() string {
	return "people"
}

// Address represents a postal address attached to a person
type Address struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	PersonID  uint           `gorm:"not null;index" json:"person_id"`
	Street    string         `gorm:"type:varchar(200)" json:"street"`
	City      string         `gorm:"type:varchar(100)" json:"city"`
	Province  string         `gorm:"type:varchar(100)" json:"province"`
	Country   string         `gorm:"type:varchar(100)" json:"country"`
}

// TableName specifies the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// Qualification represents an earned degree or certification of a person
type Qualification struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	PersonID    uint           `gorm:"not null;index" json:"person_id"`
	Degree      string         `gorm:"type:varchar(100);not null" json:"degree"`
	Institution string         `gorm:"type:varchar(200)" json:"institution"`
	PassingYear int            `json:"passing_year"`
}

// TableName specifies the table name for Qualification
func (Qualification) TableName() string {
	return "qualifications"
}
