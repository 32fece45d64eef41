package services

import (
	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// DepartmentService handles department mutations and their integrity rules
type DepartmentService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewDepartmentService creates a new department service
func NewDepartmentService(db *gorm.DB, audit *AuditService) *DepartmentService {
	return &DepartmentService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateDepartmentRequest represents a proposed department
type CreateDepartmentRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=100"`
	HeadID *uint  `json:"head_id" validate:"omitempty,min=1"`
}

// UpdateDepartmentRequest represents proposed department changes
type UpdateDepartmentRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2,max=100"`
	HeadID *uint  `json:"head_id" validate:"omitempty,min=1"`
}

// ValidateCreate runs all checks for a new department without touching the store
func (s *DepartmentService) ValidateCreate(req CreateDepartmentRequest) (*model.Department, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	name := validation.SanitizeString(req.Name)

	var count int64
	s.db.Model(&model.Department{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		errs.Add("name", "A department with this name already exists")
	}

	if req.HeadID != nil {
		var head model.Person
		if err := s.db.First(&head, *req.HeadID).Error; err != nil {
			errs.Add("head_id", "Head of department not found")
		} else if head.Type == model.PersonTypeStudent {
			errs.Add("head_id", "Head of department must be a faculty or admin member")
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Department{Name: name, HeadID: req.HeadID}, errs
}

// ValidateUpdate runs all checks for changes to an existing department
func (s *DepartmentService) ValidateUpdate(id uint, req UpdateDepartmentRequest) (*model.Department, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var dept model.Department
	if err := s.db.First(&dept, id).Error; err != nil {
		errs.AddNonField("Department not found")
		return nil, errs
	}

	if req.Name != "" {
		name := validation.SanitizeString(req.Name)
		var count int64
		s.db.Model(&model.Department{}).Where("name = ? AND id != ?", name, id).Count(&count)
		if count > 0 {
			errs.Add("name", "A department with this name already exists")
		}
		dept.Name = name
	}

	if req.HeadID != nil {
		var head model.Person
		if err := s.db.First(&head, *req.HeadID).Error; err != nil {
			errs.Add("head_id", "Head of department not found")
		} else if head.Type == model.PersonTypeStudent {
			errs.Add("head_id", "Head of department must be a faculty or admin member")
		}
		dept.HeadID = req.HeadID
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &dept, errs
}

// Create validates and persists a new department, then records the mutation
func (s *DepartmentService) Create(actor Actor, req CreateDepartmentRequest) (*model.Department, error) {
	dept, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(dept).Error; err != nil {
		return nil, translateStoreError("department", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Department", map[string]interface{}{"id": dept.ID, "name": dept.Name})
	return dept, nil
}

// Update validates and persists department changes
func (s *DepartmentService) Update(actor Actor, id uint, req UpdateDepartmentRequest) (*model.Department, error) {
	dept, errs := s.ValidateUpdate(id, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Save(dept).Error; err != nil {
		return nil, translateStoreError("department", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Department", map[string]interface{}{"id": dept.ID, "name": dept.Name})
	return dept, nil
}

// Delete removes a department unless programs or faculty still reference it
func (s *DepartmentService) Delete(actor Actor, id uint) error {
	var dept model.Department
	if err := s.db.First(&dept, id).Error; err != nil {
		return translateStoreError("department", err)
	}

	var programCount int64
	s.db.Model(&model.Program{}).Where("department_id = ?", id).Count(&programCount)
	if programCount > 0 {
		return &RestrictedError{Entity: "department", Dependent: "program"}
	}

	var facultyCount int64
	s.db.Model(&model.Faculty{}).Where("department_id = ?", id).Count(&facultyCount)
	if facultyCount > 0 {
		return &RestrictedError{Entity: "department", Dependent: "faculty"}
	}

	if err := s.db.Delete(&dept).Error; err != nil {
		return translateStoreError("department", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Department", map[string]interface{}{"id": dept.ID, "name": dept.Name})
	return nil
}

// Get returns one department by id
func (s *DepartmentService) Get(id uint) (*model.Department, error) {
	var dept model.Department
	if err := s.db.Preload("Head").First(&dept, id).Error; err != nil {
		return nil, translateStoreError("department", err)
	}
	return &dept, nil
}

// List returns all departments
func (s *DepartmentService) List() ([]model.Department, error) {
	var departments []model.Department
	err := s.db.Order("name ASC").Find(&departments).Error
	return departments, err
}
