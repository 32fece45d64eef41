package services

import (
	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// TranscriptService handles per-student, per-semester summary records
type TranscriptService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(db *gorm.DB, audit *AuditService) *TranscriptService {
	return &TranscriptService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateTranscriptRequest represents a semester summary for a student
type CreateTranscriptRequest struct {
	StudentID    uint    `json:"student_id" validate:"required,min=1"`
	SemesterID   uint    `json:"semester_id" validate:"required,min=1"`
	TotalCredits int     `json:"total_credits" validate:"min=0,max=30"`
	SemesterGPA  float64 `json:"semester_gpa" validate:"min=0,max=4"`
}

// ValidateCreate runs all checks for a new transcript
func (s *TranscriptService) ValidateCreate(req CreateTranscriptRequest) (*model.Transcript, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var student model.Student
	studentOK := false
	if err := s.db.First(&student, req.StudentID).Error; err != nil {
		errs.Add("student_id", "Student not found")
	} else {
		studentOK = true
	}

	var semester model.Semester
	if err := s.db.First(&semester, req.SemesterID).Error; err != nil {
		errs.Add("semester_id", "Semester not found")
	} else if studentOK && semester.ProgramID != student.ProgramID {
		errs.Add("semester_id", "Semester belongs to a different program than the student")
	}

	var count int64
	s.db.Model(&model.Transcript{}).
		Where("student_id = ? AND semester_id = ?", req.StudentID, req.SemesterID).
		Count(&count)
	if count > 0 {
		errs.AddNonField("A transcript already exists for this student and semester")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Transcript{
		StudentID:    req.StudentID,
		SemesterID:   req.SemesterID,
		TotalCredits: req.TotalCredits,
		SemesterGPA:  req.SemesterGPA,
	}, errs
}

// Create validates and persists a new transcript
func (s *TranscriptService) Create(actor Actor, req CreateTranscriptRequest) (*model.Transcript, error) {
	transcript, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(transcript).Error; err != nil {
		return nil, translateStoreError("transcript", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Transcript", map[string]interface{}{
		"id":          transcript.ID,
		"student_id":  transcript.StudentID,
		"semester_id": transcript.SemesterID,
	})
	return transcript, nil
}

// UpdateTranscriptRequest corrects the summary figures of a transcript
type UpdateTranscriptRequest struct {
	TotalCredits int     `json:"total_credits" validate:"min=0,max=30"`
	SemesterGPA  float64 `json:"semester_gpa" validate:"min=0,max=4"`
}

// Update validates and persists transcript corrections. Student and semester
// bindings are immutable.
func (s *TranscriptService) Update(actor Actor, id uint, req UpdateTranscriptRequest) (*model.Transcript, error) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var transcript model.Transcript
	if err := s.db.First(&transcript, id).Error; err != nil {
		return nil, translateStoreError("transcript", err)
	}

	transcript.TotalCredits = req.TotalCredits
	transcript.SemesterGPA = req.SemesterGPA
	if err := s.db.Save(&transcript).Error; err != nil {
		return nil, translateStoreError("transcript", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Transcript", map[string]interface{}{
		"id":            transcript.ID,
		"total_credits": transcript.TotalCredits,
		"semester_gpa":  transcript.SemesterGPA,
	})
	return &transcript, nil
}

// ListByStudent returns a student's transcripts ordered by semester number
func (s *TranscriptService) ListByStudent(studentID uint) ([]model.Transcript, error) {
	var rows []model.Transcript
	err := s.db.Preload("Semester").
		Joins("JOIN semesters ON semesters.id = transcripts.semester_id").
		Where("transcripts.student_id = ?", studentID).
		Order("semesters.number ASC").Find(&rows).Error
	if err != nil {
		return nil, translateStoreError("transcript", err)
	}
	return rows, nil
}
