package services

import (
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// SalaryService handles monthly salary payments to staff
type SalaryService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewSalaryService creates a new salary service
func NewSalaryService(db *gorm.DB, audit *AuditService) *SalaryService {
	return &SalaryService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateSalaryRequest represents one monthly payment
type CreateSalaryRequest struct {
	PersonID    uint      `json:"person_id" validate:"required,min=1"`
	Year        int       `json:"year" validate:"required,min=2000"`
	Month       int       `json:"month" validate:"required,min=1,max=12"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date"`
}

// ValidateCreate runs all checks for a new salary payment
func (s *SalaryService) ValidateCreate(req CreateSalaryRequest) (*model.Salary, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var person model.Person
	if err := s.db.First(&person, req.PersonID).Error; err != nil {
		errs.Add("person_id", "Person not found")
	} else if person.Type == model.PersonTypeStudent {
		errs.Add("person_id", "Students do not receive salary payments")
	}

	now := time.Now()
	if req.Year > now.Year() || (req.Year == now.Year() && req.Month > int(now.Month())) {
		errs.Add("month", "Cannot record a salary payment for a future month")
	}

	var count int64
	s.db.Model(&model.Salary{}).
		Where("person_id = ? AND year = ? AND month = ?", req.PersonID, req.Year, req.Month).
		Count(&count)
	if count > 0 {
		errs.AddNonField("A payment for this person and month has already been recorded")
	}

	if errs.HasErrors() {
		return nil, errs
	}

	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}

	return &model.Salary{
		PersonID:    req.PersonID,
		Year:        req.Year,
		Month:       req.Month,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
	}, errs
}

// Create validates and persists a new salary payment
func (s *SalaryService) Create(actor Actor, req CreateSalaryRequest) (*model.Salary, error) {
	salary, errs := s.ValidateCreate(req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Create(salary).Error; err != nil {
		return nil, translateStoreError("salary", err)
	}

	s.audit.Record(actor, model.AuditActionCreate, "Salary", map[string]interface{}{
		"id":        salary.ID,
		"person_id": salary.PersonID,
		"year":      salary.Year,
		"month":     salary.Month,
	})
	return salary, nil
}

// Delete removes a salary record, used to correct erroneous entries
func (s *SalaryService) Delete(actor Actor, id uint) error {
	var salary model.Salary
	if err := s.db.First(&salary, id).Error; err != nil {
		return translateStoreError("salary", err)
	}

	if err := s.db.Delete(&salary).Error; err != nil {
		return translateStoreError("salary", err)
	}

	s.audit.Record(actor, model.AuditActionDelete, "Salary", map[string]interface{}{
		"id":        id,
		"person_id": salary.PersonID,
		"year":      salary.Year,
		"month":     salary.Month,
	})
	return nil
}

// ListByPerson returns a person's payments, newest month first
func (s *SalaryService) ListByPerson(personID uint, limit, offset int) ([]model.Salary, int64, error) {
	query := s.db.Model(&model.Salary{}).Where("person_id = ?", personID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateStoreError("salary", err)
	}

	var rows []model.Salary
	err := query.Order("year DESC, month DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, translateStoreError("salary", err)
	}
	return rows, total, nil
}
