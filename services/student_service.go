package services

import (
	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// studentTransitions lists the allowed status changes. Graduated and
// withdrawn are terminal.
var studentTransitions = map[model.StudentStatus][]model.StudentStatus{
	model.StudentStatusEnrolled:  {model.StudentStatusGraduated, model.StudentStatusSuspended, model.StudentStatusWithdrawn},
	model.StudentStatusSuspended: {model.StudentStatusEnrolled, model.StudentStatusWithdrawn},
}

func validStudentTransition(from, to model.StudentStatus) bool {
	for _, allowed := range studentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// StudentService handles student academic records. Creating a student creates
// the underlying person and the academic record in a single transaction.
type StudentService struct {
	db        *gorm.DB
	audit     *AuditService
	people    *PersonService
	validator *validation.Validator
}

// NewStudentService creates a new student service
func NewStudentService(db *gorm.DB, audit *AuditService, people *PersonService) *StudentService {
	return &StudentService{
		db:        db,
		audit:     audit,
		people:    people,
		validator: validation.NewValidator(),
	}
}

// CreateStudentRequest represents a new student with their person record
type CreateStudentRequest struct {
	Person    PersonInput `json:"person" validate:"required"`
	ProgramID uint        `json:"program_id" validate:"required,min=1"`
	ClassID   uint        `json:"class_id" validate:"required,min=1"`
}

// ValidateCreate runs all checks for a new student
func (s *StudentService) ValidateCreate(req CreateStudentRequest) (*model.Student, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))

	person := s.people.validatePersonInput(req.Person, 0, model.PersonTypeStudent, validation.MinStudentAge, errs)

	var program model.Program
	programOK := false
	if req.ProgramID > 0 {
		if err := s.db.First(&program, req.ProgramID).Error; err != nil {
			errs.Add("program_id", "Program not found")
		} else {
			programOK = true
		}
	}

	if req.ClassID > 0 {
		var class model.Class
		if err := s.db.First(&class, req.ClassID).Error; err != nil {
			errs.Add("class_id", "Class not found")
		} else if programOK && class.ProgramID != req.ProgramID {
			errs.Add("class_id", "Class belongs to a different program than the student")
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Student{
		Person:    *person,
		ProgramID: req.ProgramID,
		ClassID:   req.ClassID,
		Status:    model.StudentStatusEnrolled,
	}, errs
}

// Create validates and persists a new student with their person record
func (s *StudentService) Create(actor Actor, req CreateStudentRequest) (*model.Student, error) {
	student, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student.Person).Error; err != nil {
			return translateStoreError("person", err)
		}
		student.PersonID = student.Person.ID
		if err := tx.Create(student).Error; err != nil {
			return translateStoreError("student", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actor, model.AuditActionCreate, "Student", map[string]interface{}{
		"id":        student.ID,
		"person_id": student.PersonID,
		"reg_no":    student.Person.RegNo,
	})
	return student, nil
}

// UpdateStudentRequest represents proposed changes to a student record.
// Program and class changes are restricted to students without enrollments.
type UpdateStudentRequest struct {
	ProgramID uint   `json:"program_id" validate:"omitempty,min=1"`
	ClassID   uint   `json:"class_id" validate:"omitempty,min=1"`
	Status    string `json:"status" validate:"omitempty,oneof=enrolled graduated suspended withdrawn"`
}

// ValidateUpdate runs all checks for changes to an existing student record
func (s *StudentService) ValidateUpdate(id uint, req UpdateStudentRequest) (*model.Student, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var student model.Student
	if err := s.db.First(&student, id).Error; err != nil {
		errs.AddNonField("Student not found")
		return nil, errs
	}

	if req.Status != "" {
		target := model.StudentStatus(req.Status)
		if target != student.Status {
			if !validStudentTransition(student.Status, target) {
				errs.Add("status", "Cannot change status from %s to %s", student.Status, target)
			} else {
				student.Status = target
			}
		}
	}

	programChanged := req.ProgramID > 0 && req.ProgramID != student.ProgramID
	classChanged := req.ClassID > 0 && req.ClassID != student.ClassID
	if programChanged || classChanged {
		var enrollments int64
		s.db.Model(&model.Enrollment{}).Where("student_id = ?", id).Count(&enrollments)
		if enrollments > 0 {
			errs.AddNonField("Cannot move a student with existing enrollments to another program or class")
		}
	}

	if programChanged {
		var program model.Program
		if err := s.db.First(&program, req.ProgramID).Error; err != nil {
			errs.Add("program_id", "Program not found")
		} else {
			student.ProgramID = req.ProgramID
		}
	}
	if classChanged {
		var class model.Class
		if err := s.db.First(&class, req.ClassID).Error; err != nil {
			errs.Add("class_id", "Class not found")
		} else {
			student.ClassID = req.ClassID
		}
	}

	// Re-check consistency after both sides settle
	if !errs.HasErrors() && (programChanged || classChanged) {
		var class model.Class
		if err := s.db.First(&class, student.ClassID).Error; err == nil && class.ProgramID != student.ProgramID {
			errs.Add("class_id", "Class belongs to a different program than the student")
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &student, errs
}

// Update validates and persists student changes
func (s *StudentService) Update(actor Actor, id uint, req UpdateStudentRequest) (*model.Student, error) {
	student, errs := s.ValidateUpdate(id, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Save(student).Error; err != nil {
		return nil, translateStoreError("student", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Student", map[string]interface{}{
		"id":     student.ID,
		"status": student.Status,
	})
	return student, nil
}

// Delete removes a student record. Students with enrollments or transcripts
// cannot be removed.
func (s *StudentService) Delete(actor Actor, id uint) error {
	var student model.Student
	if err := s.db.First(&student, id).Error; err != nil {
		return translateStoreError("student", err)
	}

	var enrollments int64
	s.db.Model(&model.Enrollment{}).Where("student_id = ?", id).Count(&enrollments)
	if enrollments > 0 {
		return &RestrictedError{Entity: "student", Dependent: "enrollments"}
	}

	var transcripts int64
	s.db.Model(&model.Transcript{}).Where("student_id = ?", id).Count(&transcripts)
	if transcripts > 0 {
		return &RestrictedError{Entity: "student", Dependent: "transcripts"}
	}

	if err := s.db.Delete(&student).Error; err != nil {
		return translateStoreError("student", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Student", map[string]interface{}{"id": id, "person_id": student.PersonID})
	return nil
}

// Get returns one student with person, program, and class
func (s *StudentService) Get(id uint) (*model.Student, error) {
	var student model.Student
	err := s.db.Preload("Person").Preload("Program").Preload("Class").First(&student, id).Error
	if err != nil {
		return nil, translateStoreError("student", err)
	}
	return &student, nil
}

// List returns students filtered by program, class, or status, newest first
func (s *StudentService) List(programID, classID uint, status string, limit, offset int) ([]model.Student, int64, error) {
	query := s.db.Model(&model.Student{})
	if programID > 0 {
		query = query.Where("program_id = ?", programID)
	}
	if classID > 0 {
		query = query.Where("class_id = ?", classID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateStoreError("student", err)
	}

	var rows []model.Student
	err := query.Preload("Person").Preload("Class").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, translateStoreError("student", err)
	}
	return rows, total, nil
}
