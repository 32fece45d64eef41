package services

import (
	"strings"
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// AssessmentService handles graded activities within course allocations,
// marked submissions, and lecture attendance.
type AssessmentService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(db *gorm.DB, audit *AuditService) *AssessmentService {
	return &AssessmentService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateAssessmentRequest represents a new graded activity
type CreateAssessmentRequest struct {
	AllocationID uint      `json:"allocation_id" validate:"required,min=1"`
	Name         string    `json:"name" validate:"required,min=2,max=100"`
	Type         string    `json:"type" validate:"required,oneof=quiz assignment midterm final project"`
	Date         time.Time `json:"date"`
	Weightage    float64   `json:"weightage" validate:"required,gt=0,lte=100"`
	TotalMarks   float64   `json:"total_marks" validate:"required,gt=0,lte=100"`
}

// ValidateCreate runs all checks for a new assessment
func (s *AssessmentService) ValidateCreate(req CreateAssessmentRequest) (*model.Assessment, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var allocation model.CourseAllocation
	if err := s.db.First(&allocation, req.AllocationID).Error; err != nil {
		errs.Add("allocation_id", "Course allocation not found")
		return nil, errs
	}

	name := validation.SanitizeString(req.Name)

	// Name is unique per allocation, compared case-insensitively
	var count int64
	s.db.Model(&model.Assessment{}).
		Where("allocation_id = ? AND LOWER(name) = ?", req.AllocationID, strings.ToLower(name)).
		Count(&count)
	if count > 0 {
		errs.Add("name", "An assessment named %q already exists for this allocation", name)
	}

	// Combined weightage must not exceed 100 for the allocation
	var existingWeight float64
	s.db.Model(&model.Assessment{}).
		Where("allocation_id = ?", req.AllocationID).
		Select("COALESCE(SUM(weightage), 0)").Scan(&existingWeight)
	if existingWeight+req.Weightage > 100 {
		errs.Add("weightage", "Combined weightage would exceed 100 (current total %.1f)", existingWeight)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Assessment{
		AllocationID: req.AllocationID,
		Name:         name,
		Type:         model.AssessmentType(req.Type),
		Date:         req.Date,
		Weightage:    req.Weightage,
		TotalMarks:   req.TotalMarks,
	}, errs
}

// Create validates and persists a new assessment
func (s *AssessmentService) Create(actor Actor, req CreateAssessmentRequest) (*model.Assessment, error) {
	assessment, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(assessment).Error; err != nil {
		return nil, translateStoreError("assessment", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Assessment", map[string]interface{}{
		"id":            assessment.ID,
		"allocation_id": assessment.AllocationID,
		"name":          assessment.Name,
	})
	return assessment, nil
}

// Delete removes an assessment. Assessments with marked submissions cannot
// be removed.
func (s *AssessmentService) Delete(actor Actor, id uint) error {
	var assessment model.Assessment
	if err := s.db.First(&assessment, id).Error; err != nil {
		return translateStoreError("assessment", err)
	}

	var checked int64
	s.db.Model(&model.AssessmentChecked{}).Where("assessment_id = ?", id).Count(&checked)
	if checked > 0 {
		return &RestrictedError{Entity: "assessment", Dependent: "marked submissions"}
	}

	if err := s.db.Delete(&assessment).Error; err != nil {
		return translateStoreError("assessment", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Assessment", map[string]interface{}{"id": id, "allocation_id": assessment.AllocationID})
	return nil
}

// ListByAllocation returns all assessments for an allocation ordered by date
func (s *AssessmentService) ListByAllocation(allocationID uint) ([]model.Assessment, error) {
	var rows []model.Assessment
	err := s.db.Where("allocation_id = ?", allocationID).Order("date ASC").Find(&rows).Error
	if err != nil {
		return nil, translateStoreError("assessment", err)
	}
	return rows, nil
}

// MarkSubmissionRequest records a student's marks for an assessment
type MarkSubmissionRequest struct {
	AssessmentID  uint    `json:"assessment_id" validate:"required,min=1"`
	EnrollmentID  uint    `json:"enrollment_id" validate:"required,min=1"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"min=0"`
}

// ValidateMark runs all checks for marking a submission
func (s *AssessmentService) ValidateMark(req MarkSubmissionRequest) (*model.AssessmentChecked, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var assessment model.Assessment
	if err := s.db.First(&assessment, req.AssessmentID).Error; err != nil {
		errs.Add("assessment_id", "Assessment not found")
		return nil, errs
	}

	var enrollment model.Enrollment
	if err := s.db.First(&enrollment, req.EnrollmentID).Error; err != nil {
		errs.Add("enrollment_id", "Enrollment not found")
	} else if enrollment.AllocationID != assessment.AllocationID {
		errs.Add("enrollment_id", "Enrollment belongs to a different allocation than the assessment")
	}

	if req.ObtainedMarks > assessment.TotalMarks {
		errs.Add("obtained_marks", "Obtained marks cannot exceed total marks (%.1f)", assessment.TotalMarks)
	}

	var count int64
	s.db.Model(&model.AssessmentChecked{}).
		Where("assessment_id = ? AND enrollment_id = ?", req.AssessmentID, req.EnrollmentID).
		Count(&count)
	if count > 0 {
		errs.AddNonField("This submission has already been marked")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.AssessmentChecked{
		AssessmentID:  req.AssessmentID,
		EnrollmentID:  req.EnrollmentID,
		ObtainedMarks: req.ObtainedMarks,
	}, errs
}

// MarkSubmission validates and persists a student's marks
func (s *AssessmentService) MarkSubmission(actor Actor, req MarkSubmissionRequest) (*model.AssessmentChecked, error) {
	checked, errs := s.ValidateMark(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(checked).Error; err != nil {
		return nil, translateStoreError("marked submission", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "AssessmentChecked", map[string]interface{}{
		"id":            checked.ID,
		"assessment_id": checked.AssessmentID,
		"enrollment_id": checked.EnrollmentID,
	})
	return checked, nil
}

// UpdateMarks corrects a previously marked submission
func (s *AssessmentService) UpdateMarks(actor Actor, id uint, obtainedMarks float64) (*model.AssessmentChecked, error) {
	errs := validation.NewErrors()

	var checked model.AssessmentChecked
	if err := s.db.Preload("Assessment").First(&checked, id).Error; err != nil {
		return nil, translateStoreError("marked submission", err)
	}

	if obtainedMarks < 0 {
		errs.Add("obtained_marks", "Obtained marks cannot be negative")
	}
	if obtainedMarks > checked.Assessment.TotalMarks {
		errs.Add("obtained_marks", "Obtained marks cannot exceed total marks (%.1f)", checked.Assessment.TotalMarks)
	}
	if errs.HasErrors() {
		return nil, errs
	}

	previous := checked.ObtainedMarks
	checked.ObtainedMarks = obtainedMarks
	if err := s.db.Save(&checked).Error; err != nil {
		return nil, translateStoreError("marked submission", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "AssessmentChecked", map[string]interface{}{
		"id":   checked.ID,
		"from": previous,
		"to":   obtainedMarks,
	})
	return &checked, nil
}

// RecordAttendanceRequest records one student's presence in a lecture
type RecordAttendanceRequest struct {
	LectureID    uint `json:"lecture_id" validate:"required,min=1"`
	EnrollmentID uint `json:"enrollment_id" validate:"required,min=1"`
	Present      bool `json:"present"`
}

// RecordAttendance validates and persists a lecture attendance record.
// Re-recording the same student and lecture updates the existing row.
func (s *AssessmentService) RecordAttendance(actor Actor, req RecordAttendanceRequest) (*model.Attendance, error) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var lecture model.Lecture
	if err := s.db.First(&lecture, req.LectureID).Error; err != nil {
		errs.Add("lecture_id", "Lecture not found")
		return nil, errs
	}

	var enrollment model.Enrollment
	if err := s.db.First(&enrollment, req.EnrollmentID).Error; err != nil {
		errs.Add("enrollment_id", "Enrollment not found")
		return nil, errs
	}
	if enrollment.AllocationID != lecture.AllocationID {
		errs.Add("enrollment_id", "Enrollment belongs to a different allocation than the lecture")
		return nil, errs
	}

	var attendance model.Attendance
	err := s.db.Where("lecture_id = ? AND enrollment_id = ?", req.LectureID, req.EnrollmentID).
		First(&attendance).Error
	if err == nil {
		attendance.Present = req.Present
		if err := s.db.Save(&attendance).Error; err != nil {
			return nil, translateStoreError("attendance", err)
		}
		s.audit.Record(actor, model.AuditActionUpdate, "Attendance", map[string]interface{}{
			"id": attendance.ID, "present": req.Present,
		})
		return &attendance, nil
	}

	attendance = model.Attendance{
		LectureID:    req.LectureID,
		EnrollmentID: req.EnrollmentID,
		Present:      req.Present,
	}
	if err := s.db.Create(&attendance).Error; err != nil {
		return nil, translateStoreError("attendance", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Attendance", map[string]interface{}{
		"id": attendance.ID, "lecture_id": req.LectureID, "enrollment_id": req.EnrollmentID, "present": req.Present,
	})
	return &attendance, nil
}

// ListAttendance returns attendance rows for a lecture
func (s *AssessmentService) ListAttendance(lectureID uint) ([]model.Attendance, error) {
	var rows []model.Attendance
	err := s.db.Where("lecture_id = ?", lectureID).Find(&rows).Error
	if err != nil {
		return nil, translateStoreError("attendance", err)
	}
	return rows, nil
}
