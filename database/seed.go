package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedDepartments(); err != nil {
		return fmt.Errorf("failed to seed departments: %w", err)
	}

	if err := s.SeedPrograms(); err != nil {
		return fmt.Errorf("failed to seed programs: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin account with a linked Person record
func (s *Seeder) SeedAdminUser() error {
	// Check if admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	// Hash password
	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         "admin",
		TokenVersion: 0,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	// Linked Person record so admin actions resolve to an audit actor
	person := &model.Person{
		RegNo:              "ADMIN-001",
		Name:               admin.Name,
		InstitutionalEmail: adminEmail,
		Type:               model.PersonTypeAdmin,
		DOB:                time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:             &admin.ID,
	}

	if err := s.db.Create(person).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedDepartments creates sample departments
func (s *Seeder) SeedDepartments() error {
	var count int64
	if err := s.db.Model(&model.Department{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Departments already exist, skipping...")
		return nil
	}

	departments := []model.Department{
		{Name: "Computer Science"},
		{Name: "Electrical Engineering"},
		{Name: "Mathematics"},
		{Name: "Business Administration"},
	}

	if err := s.db.Create(&departments).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d departments\n", len(departments))
	return nil
}

// SeedPrograms creates sample programs
func (s *Seeder) SeedPrograms() error {
	var count int64
	if err := s.db.Model(&model.Program{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Programs already exist, skipping...")
		return nil
	}

	var departments []model.Department
	if err := s.db.Find(&departments).Error; err != nil {
		return err
	}

	if len(departments) == 0 {
		return fmt.Errorf("no departments found, seed departments first")
	}

	programs := []model.Program{
		{
			Code:           "CS-BS",
			Name:           "Bachelor of Science in Computer Science",
			TotalSemesters: 8,
			Fee:            45000,
			DepartmentID:   departments[0].ID,
		},
		{
			Code:           "CS-MS",
			Name:           "Master of Science in Computer Science",
			TotalSemesters: 4,
			Fee:            60000,
			DepartmentID:   departments[0].ID,
		},
		{
			Code:           "EE-BS",
			Name:           "Bachelor of Science in Electrical Engineering",
			TotalSemesters: 8,
			Fee:            48000,
			DepartmentID:   departments[1].ID,
		},
	}

	if err := s.db.Create(&programs).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d programs\n", len(programs))
	return nil
}

// SeedCourses creates sample courses with prerequisite links
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	intro := model.Course{
		Code:        "CS101",
		Name:        "Introduction to Programming",
		CreditHours: 3,
		Description: "Foundations of programming using a high-level language",
	}
	if err := s.db.Create(&intro).Error; err != nil {
		return err
	}

	followups := []model.Course{
		{
			Code:           "CS102",
			Name:           "Object Oriented Programming",
			CreditHours:    3,
			PrerequisiteID: &intro.ID,
			Description:    "Classes, inheritance, and polymorphism",
		},
		{
			Code:        "MATH101",
			Name:        "Calculus I",
			CreditHours: 3,
		},
	}

	if err := s.db.Create(&followups).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d courses\n", len(followups)+1)
	return nil
}
