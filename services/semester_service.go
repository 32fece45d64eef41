package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// SemesterService handles semesters and course-to-semester assignments
// (semester details), enforcing program-scoped numbering and cross-program
// consistency rules.
type SemesterService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewSemesterService creates a new semester service
func NewSemesterService(db *gorm.DB, audit *AuditService) *SemesterService {
	return &SemesterService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateSemesterRequest represents a proposed semester
type CreateSemesterRequest struct {
	ProgramID uint   `json:"program_id" validate:"required,min=1"`
	Number    int    `json:"number" validate:"required,min=1,max=12"`
	Status    string `json:"status" validate:"omitempty,oneof=active inactive completed"`
	Session   string `json:"session" validate:"omitempty,max=50"`
}

// UpdateSemesterRequest represents proposed semester changes
type UpdateSemesterRequest struct {
	Number  *int   `json:"number" validate:"omitempty,min=1,max=12"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive completed"`
	Session string `json:"session" validate:"omitempty,max=50"`
}

// ValidateCreate runs all checks for a new semester without touching the store
func (s *SemesterService) ValidateCreate(req CreateSemesterRequest) (*model.Semester, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var prog model.Program
	if err := s.db.First(&prog, req.ProgramID).Error; err != nil {
		errs.Add("program_id", "Program not found")
		return nil, errs
	}

	// Number must stay within the program's declared term count
	if req.Number > prog.TotalSemesters {
		errs.Add("number", "Semester number %d exceeds program's total of %d semesters", req.Number, prog.TotalSemesters)
	}

	var count int64
	s.db.Model(&model.Semester{}).
		Where("program_id = ? AND number = ?", req.ProgramID, req.Number).
		Count(&count)
	if count > 0 {
		errs.Add("number", "Semester %d already exists for this program", req.Number)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	status := model.SemesterStatus(req.Status)
	if status == "" {
		status = model.SemesterStatusInactive
	}

	return &model.Semester{
		ProgramID: req.ProgramID,
		Number:    req.Number,
		Status:    status,
		Session:   validation.SanitizeString(req.Session),
	}, errs
}

// ValidateUpdate runs all checks for changes to an existing semester
func (s *SemesterService) ValidateUpdate(id uint, req UpdateSemesterRequest) (*model.Semester, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var sem model.Semester
	if err := s.db.Preload("Program").First(&sem, id).Error; err != nil {
		errs.AddNonField("Semester not found")
		return nil, errs
	}

	if req.Number != nil && *req.Number != sem.Number {
		if *req.Number > sem.Program.TotalSemesters {
			errs.Add("number", "Semester number %d exceeds program's total of %d semesters", *req.Number, sem.Program.TotalSemesters)
		}
		var count int64
		s.db.Model(&model.Semester{}).
			Where("program_id = ? AND number = ? AND id != ?", sem.ProgramID, *req.Number, id).
			Count(&count)
		if count > 0 {
			errs.Add("number", "Semester %d already exists for this program", *req.Number)
		}
		if !errs.HasErrors() {
			sem.Number = *req.Number
		}
	}

	if req.Status != "" {
		sem.Status = model.SemesterStatus(req.Status)
	}
	if req.Session != "" {
		sem.Session = validation.SanitizeString(req.Session)
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &sem, errs
}

// Create validates and persists a new semester, then records the mutation
func (s *SemesterService) Create(actor Actor, req CreateSemesterRequest) (*model.Semester, error) {
	sem, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(sem).Error; err != nil {
		return nil, translateStoreError("semester", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Semester", map[string]interface{}{"id": sem.ID, "program_id": sem.ProgramID, "number": sem.Number})
	return sem, nil
}

// Update validates and persists semester changes
func (s *SemesterService) Update(actor Actor, id uint, req UpdateSemesterRequest) (*model.Semester, error) {
	sem, errs := s.ValidateUpdate(id, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Save(sem).Error; err != nil {
		return nil, translateStoreError("semester", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Semester", map[string]interface{}{"id": sem.ID, "number": sem.Number, "status": sem.Status})
	return sem, nil
}

// missingNumbers computes which semester numbers in [from, total] are absent
// from existing, and which are already taken. Extracted so the all-or-nothing
// bulk pre-check is testable without a database.
func missingNumbers(from, total int, existing []int) (missing, conflicts []int) {
	taken := make(map[int]bool, len(existing))
	for _, n := range existing {
		taken[n] = true
	}
	for n := from; n <= total; n++ {
		if taken[n] {
			conflicts = append(conflicts, n)
		} else {
			missing = append(missing, n)
		}
	}
	sort.Ints(conflicts)
	return missing, conflicts
}

// CreateRemaining creates all semesters from number `from` through the
// program's total in one transaction. If any target number already exists,
// the whole batch is rejected and the conflicting numbers are listed; no rows
// are created.
func (s *SemesterService) CreateRemaining(actor Actor, programID uint, from int, session string) ([]model.Semester, error) {
	errs := validation.NewErrors()

	var prog model.Program
	if err := s.db.First(&prog, programID).Error; err != nil {
		errs.Add("program_id", "Program not found")
		return nil, errs
	}

	if from < 1 || from > prog.TotalSemesters {
		errs.Add("from", "Start semester must be between 1 and %d", prog.TotalSemesters)
		return nil, errs
	}

	var existing []int
	s.db.Model(&model.Semester{}).Where("program_id = ?", programID).Pluck("number", &existing)

	missing, conflicts := missingNumbers(from, prog.TotalSemesters, existing)
	if len(conflicts) > 0 {
		strs := make([]string, len(conflicts))
		for i, n := range conflicts {
			strs[i] = fmt.Sprintf("%d", n)
		}
		errs.Add("number", "Semesters already exist for this program: %s", strings.Join(strs, ", "))
		return nil, errs
	}
	if len(missing) == 0 {
		errs.AddNonField("No semesters left to create")
		return nil, errs
	}

	semesters := make([]model.Semester, 0, len(missing))
	for _, n := range missing {
		semesters = append(semesters, model.Semester{
			ProgramID: programID,
			Number:    n,
			Status:    model.SemesterStatusInactive,
			Session:   validation.SanitizeString(session),
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&semesters).Error
	})
	if err != nil {
		return nil, translateStoreError("semester", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Semester", map[string]interface{}{"program_id": programID, "numbers": missing})
	return semesters, nil
}

// Delete removes a semester; assigned course details cascade with it
func (s *SemesterService) Delete(actor Actor, id uint) error {
	var sem model.Semester
	if err := s.db.First(&sem, id).Error; err != nil {
		return translateStoreError("semester", err)
	}

	var transcriptCount int64
	s.db.Model(&model.Transcript{}).Where("semester_id = ?", id).Count(&transcriptCount)
	if transcriptCount > 0 {
		return &RestrictedError{Entity: "semester", Dependent: "transcript"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Owned assignments cascade
		if err := tx.Where("semester_id = ?", id).Delete(&model.SemesterDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sem).Error
	})
	if err != nil {
		return translateStoreError("semester", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Semester", map[string]interface{}{"id": sem.ID, "program_id": sem.ProgramID, "number": sem.Number})
	return nil
}

// Get returns one semester by id
func (s *SemesterService) Get(id uint) (*model.Semester, error) {
	var sem model.Semester
	err := s.db.Preload("Program").
		Preload("Details").
		Preload("Details.Course").
		Preload("Details.Class").
		First(&sem, id).Error
	if err != nil {
		return nil, translateStoreError("semester", err)
	}
	return &sem, nil
}

// ListByProgram returns a program's semesters ordered by number
func (s *SemesterService) ListByProgram(programID uint) ([]model.Semester, error) {
	var semesters []model.Semester
	err := s.db.Where("program_id = ?", programID).Order("number ASC").Find(&semesters).Error
	return semesters, err
}

// CreateSemesterDetailRequest assigns a course to a semester for a class
type CreateSemesterDetailRequest struct {
	SemesterID uint `json:"semester_id" validate:"required,min=1"`
	CourseID   uint `json:"course_id" validate:"required,min=1"`
	ClassID    uint `json:"class_id" validate:"required,min=1"`
}

// ValidateCreateDetail runs all checks for a new course assignment
func (s *SemesterService) ValidateCreateDetail(req CreateSemesterDetailRequest) (*model.SemesterDetail, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var sem model.Semester
	if err := s.db.First(&sem, req.SemesterID).Error; err != nil {
		errs.Add("semester_id", "Semester not found")
	}

	var course model.Course
	if err := s.db.First(&course, req.CourseID).Error; err != nil {
		errs.Add("course_id", "Course not found")
	}

	var class model.Class
	if err := s.db.First(&class, req.ClassID).Error; err != nil {
		errs.Add("class_id", "Class not found")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	// The class must belong to the same program as the semester
	if class.ProgramID != sem.ProgramID {
		errs.Add("class_id", "Class belongs to a different program than the semester")
	}

	var count int64
	s.db.Model(&model.SemesterDetail{}).
		Where("semester_id = ? AND course_id = ? AND class_id = ?", req.SemesterID, req.CourseID, req.ClassID).
		Count(&count)
	if count > 0 {
		errs.AddNonField("This course is already assigned to this semester for this class")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.SemesterDetail{
		SemesterID: req.SemesterID,
		CourseID:   req.CourseID,
		ClassID:    req.ClassID,
	}, errs
}

// CreateDetail validates and persists a course assignment
func (s *SemesterService) CreateDetail(actor Actor, req CreateSemesterDetailRequest) (*model.SemesterDetail, error) {
	detail, errs := s.ValidateCreateDetail(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(detail).Error; err != nil {
		return nil, translateStoreError("semester detail", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "SemesterDetail", map[string]interface{}{
		"id": detail.ID, "semester_id": detail.SemesterID, "course_id": detail.CourseID, "class_id": detail.ClassID,
	})
	return detail, nil
}

// DeleteDetail removes a course assignment
func (s *SemesterService) DeleteDetail(actor Actor, id uint) error {
	var detail model.SemesterDetail
	if err := s.db.First(&detail, id).Error; err != nil {
		return translateStoreError("semester detail", err)
	}

	if err := s.db.Delete(&detail).Error; err != nil {
		return translateStoreError("semester detail", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "SemesterDetail", map[string]interface{}{"id": detail.ID})
	return nil
}
