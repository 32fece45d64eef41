package services

import (
	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// EnrollmentService handles student registrations into course allocations,
// their final results, and course reviews.
type EnrollmentService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(db *gorm.DB, audit *AuditService) *EnrollmentService {
	return &EnrollmentService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateEnrollmentRequest registers a student into a course allocation
type CreateEnrollmentRequest struct {
	StudentID    uint `json:"student_id" validate:"required,min=1"`
	AllocationID uint `json:"allocation_id" validate:"required,min=1"`
}

// ValidateCreate runs all checks for a new enrollment
func (s *EnrollmentService) ValidateCreate(req CreateEnrollmentRequest) (*model.Enrollment, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var student model.Student
	if err := s.db.First(&student, req.StudentID).Error; err != nil {
		errs.Add("student_id", "Student not found")
	} else if student.Status != model.StudentStatusEnrolled {
		errs.Add("student_id", "Only students with enrolled status can register for courses")
	}

	var allocation model.CourseAllocation
	if err := s.db.First(&allocation, req.AllocationID).Error; err != nil {
		errs.Add("allocation_id", "Course allocation not found")
	} else if allocation.Status != model.AllocationStatusOngoing {
		errs.Add("allocation_id", "Students can only enroll in ongoing allocations")
	}

	var count int64
	s.db.Model(&model.Enrollment{}).
		Where("student_id = ? AND allocation_id = ?", req.StudentID, req.AllocationID).
		Count(&count)
	if count > 0 {
		errs.AddNonField("This student is already enrolled in this allocation")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Enrollment{
		StudentID:    req.StudentID,
		AllocationID: req.AllocationID,
		Status:       model.EnrollmentStatusActive,
	}, errs
}

// Create validates and persists a new enrollment
func (s *EnrollmentService) Create(actor Actor, req CreateEnrollmentRequest) (*model.Enrollment, error) {
	enrollment, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(enrollment).Error; err != nil {
		return nil, translateStoreError("enrollment", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Enrollment", map[string]interface{}{
		"id":            enrollment.ID,
		"student_id":    enrollment.StudentID,
		"allocation_id": enrollment.AllocationID,
	})
	return enrollment, nil
}

// Drop marks an active enrollment as dropped. Enrollments with a recorded
// result cannot be dropped.
func (s *EnrollmentService) Drop(actor Actor, id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := s.db.First(&enrollment, id).Error; err != nil {
		return nil, translateStoreError("enrollment", err)
	}

	errs := validation.NewErrors()
	if enrollment.Status != model.EnrollmentStatusActive {
		errs.Add("status", "Only active enrollments can be dropped")
		return nil, errs
	}

	var results int64
	s.db.Model(&model.Result{}).Where("enrollment_id = ?", id).Count(&results)
	if results > 0 {
		errs.AddNonField("Cannot drop an enrollment with a recorded result")
		return nil, errs
	}

	enrollment.Status = model.EnrollmentStatusDropped
	if err := s.db.Save(&enrollment).Error; err != nil {
		return nil, translateStoreError("enrollment", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Enrollment", map[string]interface{}{
		"id": enrollment.ID, "status": enrollment.Status,
	})
	return &enrollment, nil
}

// Get returns one enrollment with student, allocation, and result
func (s *EnrollmentService) Get(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := s.db.Preload("Student.Person").Preload("Allocation.Course").Preload("Result").
		First(&enrollment, id).Error
	if err != nil {
		return nil, translateStoreError("enrollment", err)
	}
	return &enrollment, nil
}

// List returns enrollments filtered by student or allocation
func (s *EnrollmentService) List(studentID, allocationID uint, limit, offset int) ([]model.Enrollment, int64, error) {
	query := s.db.Model(&model.Enrollment{})
	if studentID > 0 {
		query = query.Where("student_id = ?", studentID)
	}
	if allocationID > 0 {
		query = query.Where("allocation_id = ?", allocationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateStoreError("enrollment", err)
	}

	var rows []model.Enrollment
	err := query.Preload("Student.Person").Preload("Allocation.Course").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, translateStoreError("enrollment", err)
	}
	return rows, total, nil
}

// RecordResultRequest represents the final outcome of one enrollment
type RecordResultRequest struct {
	EnrollmentID  uint    `json:"enrollment_id" validate:"required,min=1"`
	CourseGPA     float64 `json:"course_gpa" validate:"min=0,max=4"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"min=0,max=100"`
}

// ValidateResult runs all checks for recording a result
func (s *EnrollmentService) ValidateResult(req RecordResultRequest) (*model.Result, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var enrollment model.Enrollment
	if err := s.db.First(&enrollment, req.EnrollmentID).Error; err != nil {
		errs.Add("enrollment_id", "Enrollment not found")
		return nil, errs
	}

	if enrollment.Status == model.EnrollmentStatusDropped {
		errs.Add("enrollment_id", "Cannot record a result for a dropped enrollment")
	}

	// One result per enrollment
	var count int64
	s.db.Model(&model.Result{}).Where("enrollment_id = ?", req.EnrollmentID).Count(&count)
	if count > 0 {
		errs.AddNonField("A result has already been recorded for this enrollment")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Result{
		EnrollmentID:  req.EnrollmentID,
		CourseGPA:     req.CourseGPA,
		ObtainedMarks: req.ObtainedMarks,
	}, errs
}

// RecordResult validates and persists a final result, marking the enrollment
// completed in the same transaction.
func (s *EnrollmentService) RecordResult(actor Actor, req RecordResultRequest) (*model.Result, error) {
	result, errs := s.ValidateResult(req)
	if errs.HasErrors() {
		return nil, errs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return translateStoreError("result", err)
		}
		if err := tx.Model(&model.Enrollment{}).Where("id = ?", req.EnrollmentID).
			Update("status", model.EnrollmentStatusCompleted).Error; err != nil {
			return translateStoreError("enrollment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actor, model.AuditActionCreate, "Result", map[string]interface{}{
		"id":            result.ID,
		"enrollment_id": result.EnrollmentID,
		"course_gpa":    result.CourseGPA,
	})
	return result, nil
}

// CreateReviewRequest represents a student's feedback on a completed course
type CreateReviewRequest struct {
	EnrollmentID uint   `json:"enrollment_id" validate:"required,min=1"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comments     string `json:"comments" validate:"omitempty,max=2000"`
}

// CreateReview validates and persists a course review. Reviews are only
// accepted for completed enrollments, one per enrollment.
func (s *EnrollmentService) CreateReview(actor Actor, req CreateReviewRequest) (*model.Review, error) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var enrollment model.Enrollment
	if err := s.db.First(&enrollment, req.EnrollmentID).Error; err != nil {
		errs.Add("enrollment_id", "Enrollment not found")
		return nil, errs
	}
	if enrollment.Status != model.EnrollmentStatusCompleted {
		errs.Add("enrollment_id", "Reviews can only be submitted for completed enrollments")
		return nil, errs
	}

	var count int64
	s.db.Model(&model.Review{}).Where("enrollment_id = ?", req.EnrollmentID).Count(&count)
	if count > 0 {
		errs.AddNonField("A review has already been submitted for this enrollment")
		return nil, errs
	}

	review := model.Review{
		EnrollmentID: req.EnrollmentID,
		Rating:       req.Rating,
		Comments:     validation.SanitizeString(req.Comments),
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, translateStoreError("review", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Review", map[string]interface{}{
		"id":            review.ID,
		"enrollment_id": review.EnrollmentID,
		"rating":        review.Rating,
	})
	return &review, nil
}

// ListReviews returns reviews for a course allocation
func (s *EnrollmentService) ListReviews(allocationID uint) ([]model.Review, error) {
	var rows []model.Review
	err := s.db.Joins("JOIN enrollments ON enrollments.id = reviews.enrollment_id").
		Where("enrollments.allocation_id = ?", allocationID).
		Order("reviews.created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, translateStoreError("review", err)
	}
	return rows, nil
}
