package services

import (
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// ClassService handles admitted cohorts (batches) of a program
type ClassService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewClassService creates a new class service
func NewClassService(db *gorm.DB, audit *AuditService) *ClassService {
	return &ClassService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateClassRequest represents a proposed class (batch)
type CreateClassRequest struct {
	ProgramID uint `json:"program_id" validate:"required,min=1"`
	BatchYear int  `json:"batch_year" validate:"required,min=2000"`
}

// ValidateCreate runs all checks for a new class without touching the store
func (s *ClassService) ValidateCreate(req CreateClassRequest) (*model.Class, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	if !validation.ValidBatchYear(req.BatchYear, time.Now()) {
		errs.Add("batch_year", "Batch year must be between %d and %d", validation.MinBatchYear, validation.MaxBatchYear(time.Now()))
	}

	var prog model.Program
	if err := s.db.First(&prog, req.ProgramID).Error; err != nil {
		errs.Add("program_id", "Program not found")
	}

	if !errs.HasErrors() {
		var count int64
		s.db.Model(&model.Class{}).
			Where("program_id = ? AND batch_year = ?", req.ProgramID, req.BatchYear).
			Count(&count)
		if count > 0 {
			errs.Add("batch_year", "A class for batch %d already exists in this program", req.BatchYear)
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Class{ProgramID: req.ProgramID, BatchYear: req.BatchYear}, errs
}

// Create validates and persists a new class, then records the mutation
func (s *ClassService) Create(actor Actor, req CreateClassRequest) (*model.Class, error) {
	class, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(class).Error; err != nil {
		return nil, translateStoreError("class", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Class", map[string]interface{}{"id": class.ID, "program_id": class.ProgramID, "batch_year": class.BatchYear})
	return class, nil
}

// Delete removes a class unless students or semester assignments reference it
func (s *ClassService) Delete(actor Actor, id uint) error {
	var class model.Class
	if err := s.db.First(&class, id).Error; err != nil {
		return translateStoreError("class", err)
	}

	var studentCount int64
	s.db.Model(&model.Student{}).Where("class_id = ?", id).Count(&studentCount)
	if studentCount > 0 {
		return &RestrictedError{Entity: "class", Dependent: "student"}
	}

	var detailCount int64
	s.db.Model(&model.SemesterDetail{}).Where("class_id = ?", id).Count(&detailCount)
	if detailCount > 0 {
		return &RestrictedError{Entity: "class", Dependent: "semester detail"}
	}

	if err := s.db.Delete(&class).Error; err != nil {
		return translateStoreError("class", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Class", map[string]interface{}{"id": class.ID, "program_id": class.ProgramID, "batch_year": class.BatchYear})
	return nil
}

// Get returns one class by id
func (s *ClassService) Get(id uint) (*model.Class, error) {
	var class model.Class
	if err := s.db.Preload("Program").First(&class, id).Error; err != nil {
		return nil, translateStoreError("class", err)
	}
	return &class, nil
}

// ListByProgram returns a program's classes ordered by intake year
func (s *ClassService) ListByProgram(programID uint) ([]model.Class, error) {
	var classes []model.Class
	err := s.db.Where("program_id = ?", programID).Order("batch_year ASC").Find(&classes).Error
	return classes, err
}
