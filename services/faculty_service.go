package services

import (
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// FacultyService handles faculty employment records. Creating a faculty
// member creates the underlying person and the employment record in a single
// transaction.
type FacultyService struct {
	db        *gorm.DB
	audit     *AuditService
	people    *PersonService
	validator *validation.Validator
}

// NewFacultyService creates a new faculty service
func NewFacultyService(db *gorm.DB, audit *AuditService, people *PersonService) *FacultyService {
	return &FacultyService{
		db:        db,
		audit:     audit,
		people:    people,
		validator: validation.NewValidator(),
	}
}

// CreateFacultyRequest represents a new faculty member with their person record
type CreateFacultyRequest struct {
	Person       PersonInput `json:"person" validate:"required"`
	Designation  string      `json:"designation" validate:"required,min=2,max=50"`
	DepartmentID uint        `json:"department_id" validate:"required,min=1"`
	JoiningDate  string      `json:"joining_date" validate:"required"` // YYYY-MM-DD
}

// ValidateCreate runs all checks for a new faculty member
func (s *FacultyService) ValidateCreate(req CreateFacultyRequest) (*model.Faculty, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))

	person := s.people.validatePersonInput(req.Person, 0, model.PersonTypeFaculty, validation.MinFacultyAge, errs)

	var dept model.Department
	if req.DepartmentID > 0 {
		if err := s.db.First(&dept, req.DepartmentID).Error; err != nil {
			errs.Add("department_id", "Department not found")
		}
	}

	var joining time.Time
	if req.JoiningDate != "" {
		parsed, err := time.Parse(dateLayout, req.JoiningDate)
		if err != nil {
			errs.Add("joining_date", "Joining date must be in YYYY-MM-DD format")
		} else if parsed.After(time.Now()) {
			errs.Add("joining_date", "Joining date cannot be in the future")
		} else {
			joining = parsed
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Faculty{
		Person:       *person,
		Designation:  validation.SanitizeString(req.Designation),
		DepartmentID: req.DepartmentID,
		JoiningDate:  joining,
	}, errs
}

// Create validates and persists a new faculty member with their person record
func (s *FacultyService) Create(actor Actor, req CreateFacultyRequest) (*model.Faculty, error) {
	faculty, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&faculty.Person).Error; err != nil {
			return translateStoreError("person", err)
		}
		faculty.PersonID = faculty.Person.ID
		if err := tx.Create(faculty).Error; err != nil {
			return translateStoreError("faculty", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actor, model.AuditActionCreate, "Faculty", map[string]interface{}{
		"id":        faculty.ID,
		"person_id": faculty.PersonID,
		"reg_no":    faculty.Person.RegNo,
	})
	return faculty, nil
}

// UpdateFacultyRequest represents proposed changes to a faculty record
type UpdateFacultyRequest struct {
	Designation  string `json:"designation" validate:"omitempty,min=2,max=50"`
	DepartmentID uint   `json:"department_id" validate:"omitempty,min=1"`
}

// ValidateUpdate runs all checks for changes to an existing faculty record
func (s *FacultyService) ValidateUpdate(id uint, req UpdateFacultyRequest) (*model.Faculty, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var faculty model.Faculty
	if err := s.db.First(&faculty, id).Error; err != nil {
		errs.AddNonField("Faculty not found")
		return nil, errs
	}

	if req.DepartmentID > 0 && req.DepartmentID != faculty.DepartmentID {
		var dept model.Department
		if err := s.db.First(&dept, req.DepartmentID).Error; err != nil {
			errs.Add("department_id", "Department not found")
		} else {
			faculty.DepartmentID = req.DepartmentID
		}
	}

	if req.Designation != "" {
		faculty.Designation = validation.SanitizeString(req.Designation)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &faculty, errs
}

// Update validates and persists faculty changes
func (s *FacultyService) Update(actor Actor, id uint, req UpdateFacultyRequest) (*model.Faculty, error) {
	faculty, errs := s.ValidateUpdate(id, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Save(faculty).Error; err != nil {
		return nil, translateStoreError("faculty", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Faculty", map[string]interface{}{"id": faculty.ID})
	return faculty, nil
}

// Delete removes a faculty record. Faculty with course allocations cannot be
// removed.
func (s *FacultyService) Delete(actor Actor, id uint) error {
	var faculty model.Faculty
	if err := s.db.First(&faculty, id).Error; err != nil {
		return translateStoreError("faculty", err)
	}

	var allocations int64
	s.db.Model(&model.CourseAllocation{}).Where("faculty_id = ?", id).Count(&allocations)
	if allocations > 0 {
		return &RestrictedError{Entity: "faculty", Dependent: "course allocations"}
	}

	if err := s.db.Delete(&faculty).Error; err != nil {
		return translateStoreError("faculty", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Faculty", map[string]interface{}{"id": id, "person_id": faculty.PersonID})
	return nil
}

// Get returns one faculty record with person and department
func (s *FacultyService) Get(id uint) (*model.Faculty, error) {
	var faculty model.Faculty
	err := s.db.Preload("Person").Preload("Department").First(&faculty, id).Error
	if err != nil {
		return nil, translateStoreError("faculty", err)
	}
	return &faculty, nil
}

// List returns faculty, optionally filtered by department, newest first
func (s *FacultyService) List(departmentID uint, limit, offset int) ([]model.Faculty, int64, error) {
	query := s.db.Model(&model.Faculty{})
	if departmentID > 0 {
		query = query.Where("department_id = ?", departmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateStoreError("faculty", err)
	}

	var rows []model.Faculty
	err := query.Preload("Person").Preload("Department").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, translateStoreError("faculty", err)
	}
	return rows, total, nil
}
