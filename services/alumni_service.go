package services

import (
	"encoding/json"
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AlumniService handles graduated-student records
type AlumniService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewAlumniService creates a new alumni service
func NewAlumniService(db *gorm.DB, audit *AuditService) *AlumniService {
	return &AlumniService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// EmploymentInfo describes an alumni's current position
type EmploymentInfo struct {
	Employer string `json:"employer" validate:"omitempty,max=200"`
	Position string `json:"position" validate:"omitempty,max=100"`
	Location string `json:"location" validate:"omitempty,max=200"`
}

// CreateAlumniRequest represents a graduated student joining the alumni roll
type CreateAlumniRequest struct {
	StudentID      uint            `json:"student_id" validate:"required,min=1"`
	GraduationDate string          `json:"graduation_date" validate:"required"` // YYYY-MM-DD
	ContactEmail   string          `json:"contact_email" validate:"omitempty,email,max=254"`
	Employment     *EmploymentInfo `json:"employment,omitempty"`
}

// ValidateCreate runs all checks for a new alumni record
func (s *AlumniService) ValidateCreate(req CreateAlumniRequest) (*model.Alumni, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var student model.Student
	if err := s.db.First(&student, req.StudentID).Error; err != nil {
		errs.Add("student_id", "Student not found")
		return nil, errs
	}

	if student.Status != model.StudentStatusGraduated {
		errs.Add("student_id", "Only graduated students can become alumni")
	}

	var count int64
	s.db.Model(&model.Alumni{}).Where("student_id = ?", req.StudentID).Count(&count)
	if count > 0 {
		errs.AddNonField("This student is already on the alumni roll")
	}

	var graduation time.Time
	parsed, err := time.Parse(dateLayout, req.GraduationDate)
	if err != nil {
		errs.Add("graduation_date", "Graduation date must be in YYYY-MM-DD format")
	} else {
		now := time.Now()
		if parsed.After(now) {
			errs.Add("graduation_date", "Graduation date cannot be in the future")
		} else if parsed.Before(now.Add(-validation.MaxAlumniAge)) {
			errs.Add("graduation_date", "Graduation date must be within the last %d years", int(validation.MaxAlumniAge.Hours()/(24*365)))
		} else {
			graduation = parsed
		}
	}

	var employment datatypes.JSON
	if req.Employment != nil {
		if empErrs := validation.FromStruct(s.validator.ValidateStruct(*req.Employment)); empErrs.HasErrors() {
			errs.Merge(empErrs)
		} else {
			raw, marshalErr := json.Marshal(req.Employment)
			if marshalErr != nil {
				errs.Add("employment", "Employment details could not be encoded")
			} else {
				employment = datatypes.JSON(raw)
			}
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Alumni{
		StudentID:      req.StudentID,
		GraduationDate: graduation,
		ContactEmail:   req.ContactEmail,
		Employment:     employment,
	}, errs
}

// Create validates and persists a new alumni record
func (s *AlumniService) Create(actor Actor, req CreateAlumniRequest) (*model.Alumni, error) {
	alumni, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(alumni).Error; err != nil {
		return nil, translateStoreError("alumni", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Alumni", map[string]interface{}{
		"id":         alumni.ID,
		"student_id": alumni.StudentID,
	})
	return alumni, nil
}

// UpdateAlumniRequest updates contact and employment details. The student
// binding and graduation date are immutable.
type UpdateAlumniRequest struct {
	ContactEmail string          `json:"contact_email" validate:"omitempty,email,max=254"`
	Employment   *EmploymentInfo `json:"employment,omitempty"`
}

// Update validates and persists alumni contact changes
func (s *AlumniService) Update(actor Actor, id uint, req UpdateAlumniRequest) (*model.Alumni, error) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var alumni model.Alumni
	if err := s.db.First(&alumni, id).Error; err != nil {
		return nil, translateStoreError("alumni", err)
	}

	if req.ContactEmail != "" {
		alumni.ContactEmail = req.ContactEmail
	}
	if req.Employment != nil {
		if empErrs := validation.FromStruct(s.validator.ValidateStruct(*req.Employment)); empErrs.HasErrors() {
			return nil, empErrs
		}
		raw, err := json.Marshal(req.Employment)
		if err != nil {
			errs.Add("employment", "Employment details could not be encoded")
			return nil, errs
		}
		alumni.Employment = datatypes.JSON(raw)
	}

	if err := s.db.Save(&alumni).Error; err != nil {
		return nil, translateStoreError("alumni", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Alumni", map[string]interface{}{"id": alumni.ID})
	return &alumni, nil
}

// Get returns one alumni record with the student and person
func (s *AlumniService) Get(id uint) (*model.Alumni, error) {
	var alumni model.Alumni
	err := s.db.Preload("Student.Person").Preload("Student.Program").First(&alumni, id).Error
	if err != nil {
		return nil, translateStoreError("alumni", err)
	}
	return &alumni, nil
}

// List returns alumni newest graduation first
func (s *AlumniService) List(limit, offset int) ([]model.Alumni, int64, error) {
	var total int64
	if err := s.db.Model(&model.Alumni{}).Count(&total).Error; err != nil {
		return nil, 0, translateStoreError("alumni", err)
	}

	var rows []model.Alumni
	err := s.db.Preload("Student.Person").
		Order("graduation_date DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, translateStoreError("alumni", err)
	}
	return rows, total, nil
}
