package services

import (
	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// CourseService handles course mutations, including prerequisite graph
// consistency. Course codes are natural keys: normalized to upper case,
// immutable after creation.
type CourseService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewCourseService creates a new course service
func NewCourseService(db *gorm.DB, audit *AuditService) *CourseService {
	return &CourseService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents a proposed course
type CreateCourseRequest struct {
	Code           string `json:"code" validate:"required,min=5,max=20"`
	Name           string `json:"name" validate:"required,min=3,max=100"`
	CreditHours    int    `json:"credit_hours" validate:"required,min=1,max=6"`
	PrerequisiteID *uint  `json:"prerequisite_id" validate:"omitempty,min=1"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateCourseRequest represents proposed course changes. The code is immutable.
type UpdateCourseRequest struct {
	Code           string `json:"code" validate:"omitempty,min=5,max=20"`
	Name           string `json:"name" validate:"omitempty,min=3,max=100"`
	CreditHours    *int   `json:"credit_hours" validate:"omitempty,min=1,max=6"`
	PrerequisiteID *uint  `json:"prerequisite_id" validate:"omitempty,min=1"`
	ClearPrereq    bool   `json:"clear_prerequisite"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
}

// courseLookup resolves a course id to its prerequisite id. Extracted so the
// cycle walk is testable without a database.
type courseLookup func(id uint) (prerequisiteID *uint, err error)

// prerequisiteCycle walks up the prerequisite chain from candidatePrereq and
// reports whether courseID is reachable, which would close a cycle. A
// visited set guards against pre-existing loops in stored data.
func prerequisiteCycle(courseID uint, candidatePrereq uint, lookup courseLookup) (bool, error) {
	visited := map[uint]bool{}
	current := candidatePrereq

	for {
		if current == courseID {
			return true, nil
		}
		if visited[current] {
			// Existing loop that does not involve courseID; not our cycle.
			return false, nil
		}
		visited[current] = true

		next, err := lookup(current)
		if err != nil {
			return false, err
		}
		if next == nil {
			return false, nil
		}
		current = *next
	}
}

func (s *CourseService) lookupPrerequisite(id uint) (*uint, error) {
	var course model.Course
	if err := s.db.Select("id", "prerequisite_id").First(&course, id).Error; err != nil {
		return nil, err
	}
	return course.PrerequisiteID, nil
}

// checkPrerequisite validates that the prerequisite exists and that linking it
// would not create a circular dependency. courseID is zero for creates, where
// no cycle through the new course is possible yet but self-linking is caught
// once the id is known on update.
func (s *CourseService) checkPrerequisite(courseID uint, prereqID uint, errs validation.Errors) {
	var prereq model.Course
	if err := s.db.First(&prereq, prereqID).Error; err != nil {
		errs.Add("prerequisite_id", "Prerequisite course not found")
		return
	}

	if courseID == 0 {
		return
	}

	if prereqID == courseID {
		errs.Add("prerequisite_id", "A course cannot be its own prerequisite")
		return
	}

	cycle, err := prerequisiteCycle(courseID, prereqID, s.lookupPrerequisite)
	if err != nil {
		errs.Add("prerequisite_id", "Failed to verify prerequisite chain")
		return
	}
	if cycle {
		errs.Add("prerequisite_id", "This prerequisite would create a circular dependency")
	}
}

// ValidateCreate runs all checks for a new course without touching the store
func (s *CourseService) ValidateCreate(req CreateCourseRequest) (*model.Course, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	code := validation.NormalizeCode(req.Code)
	if !validation.ValidCourseCode(code) {
		errs.Add("code", "Course code must be 2-4 letters followed by 3-4 digits")
	}

	if !errs.HasErrors() {
		var count int64
		s.db.Model(&model.Course{}).Where("code = ?", code).Count(&count)
		if count > 0 {
			errs.Add("code", "A course with this code already exists")
		}
	}

	if req.PrerequisiteID != nil {
		s.checkPrerequisite(0, *req.PrerequisiteID, errs)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Course{
		Code:           code,
		Name:           validation.SanitizeString(req.Name),
		CreditHours:    req.CreditHours,
		PrerequisiteID: req.PrerequisiteID,
		Description:    validation.SanitizeString(req.Description),
	}, errs
}

// ValidateUpdate runs all checks for changes to an existing course
func (s *CourseService) ValidateUpdate(id uint, req UpdateCourseRequest) (*model.Course, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var course model.Course
	if err := s.db.First(&course, id).Error; err != nil {
		errs.AddNonField("Course not found")
		return nil, errs
	}

	// Natural key is immutable after creation
	if req.Code != "" && validation.NormalizeCode(req.Code) != course.Code {
		errs.Add("code", "Course code cannot be changed after creation")
	}

	if req.ClearPrereq {
		course.PrerequisiteID = nil
	} else if req.PrerequisiteID != nil {
		s.checkPrerequisite(id, *req.PrerequisiteID, errs)
		if !errs.HasErrors() {
			course.PrerequisiteID = req.PrerequisiteID
		}
	}

	if req.Name != "" {
		course.Name = validation.SanitizeString(req.Name)
	}
	if req.CreditHours != nil {
		course.CreditHours = *req.CreditHours
	}
	if req.Description != "" {
		course.Description = validation.SanitizeString(req.Description)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &course, errs
}

// Create validates and persists a new course, then records the mutation
func (s *CourseService) Create(actor Actor, req CreateCourseRequest) (*model.Course, error) {
	course, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(course).Error; err != nil {
		return nil, translateStoreError("course", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Course", map[string]interface{}{"id": course.ID, "code": course.Code})
	return course, nil
}

// Update validates and persists course changes
func (s *CourseService) Update(actor Actor, id uint, req UpdateCourseRequest) (*model.Course, error) {
	course, errs := s.ValidateUpdate(id, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Save(course).Error; err != nil {
		return nil, translateStoreError("course", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Course", map[string]interface{}{"id": course.ID, "code": course.Code})
	return course, nil
}

// Delete removes a course unless allocations, semester assignments, or
// dependent prerequisites still reference it
func (s *CourseService) Delete(actor Actor, id uint) error {
	var course model.Course
	if err := s.db.First(&course, id).Error; err != nil {
		return translateStoreError("course", err)
	}

	var allocCount int64
	s.db.Model(&model.CourseAllocation{}).Where("course_id = ?", id).Count(&allocCount)
	if allocCount > 0 {
		return &RestrictedError{Entity: "course", Dependent: "course allocation"}
	}

	var detailCount int64
	s.db.Model(&model.SemesterDetail{}).Where("course_id = ?", id).Count(&detailCount)
	if detailCount > 0 {
		return &RestrictedError{Entity: "course", Dependent: "semester detail"}
	}

	if err := s.db.Delete(&course).Error; err != nil {
		return translateStoreError("course", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Course", map[string]interface{}{"id": course.ID, "code": course.Code})
	return nil
}

// Get returns one course by id
func (s *CourseService) Get(id uint) (*model.Course, error) {
	var course model.Course
	if err := s.db.Preload("Prerequisite").First(&course, id).Error; err != nil {
		return nil, translateStoreError("course", err)
	}
	return &course, nil
}

// GetByCode looks a course up by its natural key, case-insensitively
func (s *CourseService) GetByCode(code string) (*model.Course, error) {
	var course model.Course
	err := s.db.Preload("Prerequisite").
		Where("code = ?", validation.NormalizeCode(code)).
		First(&course).Error
	if err != nil {
		return nil, translateStoreError("course", err)
	}
	return &course, nil
}

// List returns all courses
func (s *CourseService) List() ([]model.Course, error) {
	var courses []model.Course
	err := s.db.Order("code ASC").Find(&courses).Error
	return courses, err
}
