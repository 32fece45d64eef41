package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/cache"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// programCacheTTL bounds staleness of the code->program cache; mutations
// invalidate eagerly as well.
const programCacheTTL = 10 * time.Minute

// ProgramService handles program mutations and their integrity rules.
// Program codes are natural keys: normalized to upper case, immutable after
// creation, looked up case-insensitively.
type ProgramService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
	cache     *cache.RedisCache // optional, nil disables caching
}

// NewProgramService creates a new program service
func NewProgramService(db *gorm.DB, audit *AuditService, redisCache *cache.RedisCache) *ProgramService {
	return &ProgramService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
		cache:     redisCache,
	}
}

// CreateProgramRequest represents a proposed program
type CreateProgramRequest struct {
	Code           string  `json:"code" validate:"required,min=2,max=10"`
	Name           string  `json:"name" validate:"required,min=3,max=100"`
	TotalSemesters int     `json:"total_semesters" validate:"required,min=1,max=12"`
	Fee            float64 `json:"fee" validate:"omitempty,gte=0"`
	DepartmentID   uint    `json:"department_id" validate:"required,min=1"`
}

// UpdateProgramRequest represents proposed program changes. The code is
// immutable; supplying one that differs from the stored code is rejected.
type UpdateProgramRequest struct {
	Code           string   `json:"code" validate:"omitempty,min=2,max=10"`
	Name           string   `json:"name" validate:"omitempty,min=3,max=100"`
	TotalSemesters *int     `json:"total_semesters" validate:"omitempty,min=1,max=12"`
	Fee            *float64 `json:"fee" validate:"omitempty,gte=0"`
	DepartmentID   *uint    `json:"department_id" validate:"omitempty,min=1"`
}

// ValidateCreate runs all checks for a new program without touching the store
func (s *ProgramService) ValidateCreate(req CreateProgramRequest) (*model.Program, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	code := validation.NormalizeCode(req.Code)
	if !validation.ValidProgramCode(code) {
		errs.Add("code", "Program code may contain only letters, digits, and hyphens")
	}

	if !errs.HasErrors() {
		var count int64
		s.db.Model(&model.Program{}).Where("code = ?", code).Count(&count)
		if count > 0 {
			errs.Add("code", "A program with this code already exists")
		}
	}

	var dept model.Department
	if err := s.db.First(&dept, req.DepartmentID).Error; err != nil {
		errs.Add("department_id", "Department not found")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &model.Program{
		Code:           code,
		Name:           validation.SanitizeString(req.Name),
		TotalSemesters: req.TotalSemesters,
		Fee:            req.Fee,
		DepartmentID:   req.DepartmentID,
	}, errs
}

// ValidateUpdate runs all checks for changes to an existing program
func (s *ProgramService) ValidateUpdate(id uint, req UpdateProgramRequest) (*model.Program, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var prog model.Program
	if err := s.db.First(&prog, id).Error; err != nil {
		errs.AddNonField("Program not found")
		return nil, errs
	}

	// Natural key is immutable after creation
	if req.Code != "" && validation.NormalizeCode(req.Code) != prog.Code {
		errs.Add("code", "Program code cannot be changed after creation")
	}

	if req.TotalSemesters != nil {
		// Shrinking below an already-created semester number would orphan it
		var maxNumber int
		s.db.Model(&model.Semester{}).Where("program_id = ?", id).
			Select("COALESCE(MAX(number), 0)").Scan(&maxNumber)
		if *req.TotalSemesters < maxNumber {
			errs.Add("total_semesters", "Cannot reduce total semesters below existing semester %d", maxNumber)
		} else {
			prog.TotalSemesters = *req.TotalSemesters
		}
	}

	if req.Name != "" {
		prog.Name = validation.SanitizeString(req.Name)
	}
	if req.Fee != nil {
		prog.Fee = *req.Fee
	}
	if req.DepartmentID != nil {
		var dept model.Department
		if err := s.db.First(&dept, *req.DepartmentID).Error; err != nil {
			errs.Add("department_id", "Department not found")
		} else {
			prog.DepartmentID = *req.DepartmentID
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &prog, errs
}

// Create validates and persists a new program, then records the mutation
func (s *ProgramService) Create(actor Actor, req CreateProgramRequest) (*model.Program, error) {
	prog, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(prog).Error; err != nil {
		return nil, translateStoreError("program", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Program", map[string]interface{}{"id": prog.ID, "code": prog.Code})
	return prog, nil
}

// Update validates and persists program changes
func (s *ProgramService) Update(actor Actor, id uint, req UpdateProgramRequest) (*model.Program, error) {
	prog, errs := s.ValidateUpdate(id, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Save(prog).Error; err != nil {
		return nil, translateStoreError("program", err)
	}

	s.invalidateCache(prog.Code)
	s.audit.Record(actor, model.AuditActionUpdate, "Program", map[string]interface{}{"id": prog.ID, "code": prog.Code})
	return prog, nil
}

// Delete removes a program unless semesters, classes, or students reference it
func (s *ProgramService) Delete(actor Actor, id uint) error {
	var prog model.Program
	if err := s.db.First(&prog, id).Error; err != nil {
		return translateStoreError("program", err)
	}

	checks := []struct {
		dependent string
		count     func() int64
	}{
		{"semester", func() int64 {
			var n int64
			s.db.Model(&model.Semester{}).Where("program_id = ?", id).Count(&n)
			return n
		}},
		{"class", func() int64 {
			var n int64
			s.db.Model(&model.Class{}).Where("program_id = ?", id).Count(&n)
			return n
		}},
		{"student", func() int64 {
			var n int64
			s.db.Model(&model.Student{}).Where("program_id = ?", id).Count(&n)
			return n
		}},
	}
	for _, check := range checks {
		if check.count() > 0 {
			return &RestrictedError{Entity: "program", Dependent: check.dependent}
		}
	}

	if err := s.db.Delete(&prog).Error; err != nil {
		return translateStoreError("program", err)
	}

	s.invalidateCache(prog.Code)
	s.audit.Record(actor, model.AuditActionDelete, "Program", map[string]interface{}{"id": prog.ID, "code": prog.Code})
	return nil
}

// Get returns one program by id
func (s *ProgramService) Get(id uint) (*model.Program, error) {
	var prog model.Program
	if err := s.db.Preload("Department").First(&prog, id).Error; err != nil {
		return nil, translateStoreError("program", err)
	}
	return &prog, nil
}

// GetByCode looks a program up by its natural key, case-insensitively.
// Hot lookups are served from redis when available.
func (s *ProgramService) GetByCode(ctx context.Context, code string) (*model.Program, error) {
	code = validation.NormalizeCode(code)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, programCacheKey(code)); err == nil {
			var prog model.Program
			if json.Unmarshal([]byte(cached), &prog) == nil {
				return &prog, nil
			}
		}
	}

	var prog model.Program
	if err := s.db.Preload("Department").Where("code = ?", code).First(&prog).Error; err != nil {
		return nil, translateStoreError("program", err)
	}

	if s.cache != nil {
		if b, err := json.Marshal(prog); err == nil {
			_ = s.cache.Set(ctx, programCacheKey(code), string(b), programCacheTTL)
		}
	}

	return &prog, nil
}

// List returns all programs
func (s *ProgramService) List() ([]model.Program, error) {
	var programs []model.Program
	err := s.db.Preload("Department").Order("code ASC").Find(&programs).Error
	return programs, err
}

func (s *ProgramService) invalidateCache(code string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.cache.Delete(ctx, programCacheKey(code))
}

func programCacheKey(code string) string {
	return "program:code:" + code
}
