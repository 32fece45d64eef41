package services

import (
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// AllocationService handles course allocations (faculty teaching a course in
// a session) and the lectures delivered under them.
type AllocationService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewAllocationService creates a new allocation service
func NewAllocationService(db *gorm.DB, audit *AuditService) *AllocationService {
	return &AllocationService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateAllocationRequest represents a new course allocation
type CreateAllocationRequest struct {
	FacultyID uint   `json:"faculty_id" validate:"required,min=1"`
	CourseID  uint   `json:"course_id" validate:"required,min=1"`
	Session   string `json:"session" validate:"required,min=4,max=50"`
}

// ValidateCreate runs all checks for a new course allocation
func (s *AllocationService) ValidateCreate(req CreateAllocationRequest) (*model.CourseAllocation, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var faculty model.Faculty
	if err := s.db.Preload("Person").First(&faculty, req.FacultyID).Error; err != nil {
		errs.Add("faculty_id", "Faculty not found")
	}

	var course model.Course
	if err := s.db.First(&course, req.CourseID).Error; err != nil {
		errs.Add("course_id", "Course not found")
	}

	session := validation.SanitizeString(req.Session)

	// Name the existing allocation in the conflict so callers can act on it
	var existing model.CourseAllocation
	err := s.db.Where("faculty_id = ? AND course_id = ? AND session = ?",
		req.FacultyID, req.CourseID, session).First(&existing).Error
	if err == nil {
		errs.AddNonField("This faculty is already allocated to this course for session %s (allocation %d)", session, existing.ID)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.CourseAllocation{
		FacultyID: req.FacultyID,
		CourseID:  req.CourseID,
		Session:   session,
		Status:    model.AllocationStatusOngoing,
	}, errs
}

// Create validates and persists a new course allocation
func (s *AllocationService) Create(actor Actor, req CreateAllocationRequest) (*model.CourseAllocation, error) {
	allocation, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(allocation).Error; err != nil {
		return nil, translateStoreError("course allocation", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "CourseAllocation", map[string]interface{}{
		"id":         allocation.ID,
		"faculty_id": allocation.FacultyID,
		"course_id":  allocation.CourseID,
		"session":    allocation.Session,
	})
	return allocation, nil
}

// UpdateAllocationStatus moves an allocation between ongoing, completed, and
// cancelled. Cancelled allocations cannot be reopened.
func (s *AllocationService) UpdateAllocationStatus(actor Actor, id uint, status string) (*model.CourseAllocation, error) {
	errs := validation.NewErrors()
	target := model.AllocationStatus(status)
	switch target {
	case model.AllocationStatusOngoing, model.AllocationStatusCompleted, model.AllocationStatusCancelled:
	default:
		errs.Add("status", "Status must be one of: ongoing, completed, cancelled")
		return nil, errs
	}

	var allocation model.CourseAllocation
	if err := s.db.First(&allocation, id).Error; err != nil {
		return nil, translateStoreError("course allocation", err)
	}

	if allocation.Status == model.AllocationStatusCancelled && target != model.AllocationStatusCancelled {
		errs.Add("status", "A cancelled allocation cannot be reopened")
		return nil, errs
	}

	if allocation.Status == target {
		return &allocation, nil
	}

	previous := allocation.Status
	allocation.Status = target
	if err := s.db.Save(&allocation).Error; err != nil {
		return nil, translateStoreError("course allocation", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "CourseAllocation", map[string]interface{}{
		"id":   allocation.ID,
		"from": previous,
		"to":   target,
	})
	return &allocation, nil
}

// Delete removes an allocation. Allocations with enrollments cannot be
// removed; lectures and assessments cascade.
func (s *AllocationService) Delete(actor Actor, id uint) error {
	var allocation model.CourseAllocation
	if err := s.db.First(&allocation, id).Error; err != nil {
		return translateStoreError("course allocation", err)
	}

	var enrollments int64
	s.db.Model(&model.Enrollment{}).Where("allocation_id = ?", id).Count(&enrollments)
	if enrollments > 0 {
		return &RestrictedError{Entity: "course allocation", Dependent: "enrollments"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("allocation_id = ?", id).Delete(&model.Lecture{}).Error; err != nil {
			return translateStoreError("lecture", err)
		}
		if err := tx.Where("allocation_id = ?", id).Delete(&model.Assessment{}).Error; err != nil {
			return translateStoreError("assessment", err)
		}
		if err := tx.Delete(&allocation).Error; err != nil {
			return translateStoreError("course allocation", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(actor, model.AuditActionDelete, "CourseAllocation", map[string]interface{}{"id": id})
	return nil
}

// Get returns one allocation with faculty, course, and lectures
func (s *AllocationService) Get(id uint) (*model.CourseAllocation, error) {
	var allocation model.CourseAllocation
	err := s.db.Preload("Faculty.Person").Preload("Course").Preload("Lectures").
		First(&allocation, id).Error
	if err != nil {
		return nil, translateStoreError("course allocation", err)
	}
	return &allocation, nil
}

// List returns allocations filtered by faculty, course, or session
func (s *AllocationService) List(facultyID, courseID uint, session string, limit, offset int) ([]model.CourseAllocation, int64, error) {
	query := s.db.Model(&model.CourseAllocation{})
	if facultyID > 0 {
		query = query.Where("faculty_id = ?", facultyID)
	}
	if courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if session != "" {
		query = query.Where("session = ?", session)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateStoreError("course allocation", err)
	}

	var rows []model.CourseAllocation
	err := query.Preload("Faculty.Person").Preload("Course").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, translateStoreError("course allocation", err)
	}
	return rows, total, nil
}

// CreateLectureRequest represents one delivered lecture
type CreateLectureRequest struct {
	Number    int       `json:"number" validate:"required,min=1"`
	Venue     string    `json:"venue" validate:"omitempty,max=100"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// ValidateCreateLecture runs all checks for a new lecture under an allocation
func (s *AllocationService) ValidateCreateLecture(allocationID uint, req CreateLectureRequest) (*model.Lecture, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var allocation model.CourseAllocation
	if err := s.db.First(&allocation, allocationID).Error; err != nil {
		errs.AddNonField("Course allocation not found")
		return nil, errs
	}

	if allocation.Status != model.AllocationStatusOngoing {
		errs.AddNonField("Lectures can only be recorded for ongoing allocations")
	}

	validation.CheckLectureWindow(req.StartTime, req.EndTime, time.Now(), errs)

	var count int64
	s.db.Model(&model.Lecture{}).Where("allocation_id = ? AND number = ?", allocationID, req.Number).Count(&count)
	if count > 0 {
		errs.Add("number", "Lecture %d already exists for this allocation", req.Number)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Lecture{
		AllocationID: allocationID,
		Number:       req.Number,
		Venue:        validation.SanitizeString(req.Venue),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}, errs
}

// CreateLecture validates and persists a new lecture
func (s *AllocationService) CreateLecture(actor Actor, allocationID uint, req CreateLectureRequest) (*model.Lecture, error) {
	lecture, errs := s.ValidateCreateLecture(allocationID, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(lecture).Error; err != nil {
		return nil, translateStoreError("lecture", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Lecture", map[string]interface{}{
		"id":            lecture.ID,
		"allocation_id": allocationID,
		"number":        lecture.Number,
	})
	return lecture, nil
}

// DeleteLecture removes a lecture and its attendance records
func (s *AllocationService) DeleteLecture(actor Actor, id uint) error {
	var lecture model.Lecture
	if err := s.db.First(&lecture, id).Error; err != nil {
		return translateStoreError("lecture", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lecture_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
			return translateStoreError("attendance", err)
		}
		if err := tx.Delete(&lecture).Error; err != nil {
			return translateStoreError("lecture", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(actor, model.AuditActionDelete, "Lecture", map[string]interface{}{"id": id, "allocation_id": lecture.AllocationID})
	return nil
}

// ListLectures returns lectures for an allocation ordered by number
func (s *AllocationService) ListLectures(allocationID uint) ([]model.Lecture, error) {
	var rows []model.Lecture
	err := s.db.Where("allocation_id = ?", allocationID).Order("number ASC").Find(&rows).Error
	if err != nil {
		return nil, translateStoreError("lecture", err)
	}
	return rows, nil
}
