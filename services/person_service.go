package services

import (
	"time"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils/validation"
	"gorm.io/gorm"
)

// dateLayout is the wire format for calendar dates (no time component)
const dateLayout = "2006-01-02"

// PersonService handles the shared person record behind faculty, admins, and
// students: natural-key registration numbers, institutional emails, and
// biographical fields.
type PersonService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *validation.Validator
}

// NewPersonService creates a new person service
func NewPersonService(db *gorm.DB, audit *AuditService) *PersonService {
	return &PersonService{
		db:        db,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// PersonInput carries the person fields shared by all person-creating flows
type PersonInput struct {
	RegNo              string `json:"reg_no" validate:"required,min=3,max=20"`
	Name               string `json:"name" validate:"required,min=2,max=100"`
	InstitutionalEmail string `json:"institutional_email" validate:"required,email,max=254"`
	PersonalEmail      string `json:"personal_email" validate:"omitempty,email,max=254"`
	NationalID         string `json:"national_id" validate:"omitempty,max=30"`
	Gender             string `json:"gender" validate:"omitempty,oneof=male female other"`
	DOB                string `json:"dob" validate:"required"` // YYYY-MM-DD
	Phone              string `json:"phone" validate:"omitempty,max=20"`
}

// validatePersonInput runs the shared person checks. excludeID skips the row
// being updated in uniqueness queries; minAge is the role-specific minimum.
func (s *PersonService) validatePersonInput(input PersonInput, excludeID uint, personType model.PersonType, minAge int, errs validation.Errors) *model.Person {
	structErrs := validation.FromStruct(s.validator.ValidateStruct(input))
	errs.Merge(structErrs)
	if structErrs.HasErrors() {
		return nil
	}

	regNo := validation.NormalizeCode(input.RegNo)
	if !validation.ValidRegNo(regNo) {
		errs.Add("reg_no", "Registration number may contain only letters, digits, and hyphens")
	} else {
		query := s.db.Model(&model.Person{}).Where("reg_no = ?", regNo)
		if excludeID > 0 {
			query = query.Where("id != ?", excludeID)
		}
		var count int64
		query.Count(&count)
		if count > 0 {
			errs.Add("reg_no", "A person with this registration number already exists")
		}
	}

	emailQuery := s.db.Model(&model.Person{}).Where("institutional_email = ?", input.InstitutionalEmail)
	if excludeID > 0 {
		emailQuery = emailQuery.Where("id != ?", excludeID)
	}
	var emailCount int64
	emailQuery.Count(&emailCount)
	if emailCount > 0 {
		errs.Add("institutional_email", "A person with this institutional email already exists")
	}

	dob, err := time.Parse(dateLayout, input.DOB)
	if err != nil {
		errs.Add("dob", "Date of birth must be in YYYY-MM-DD format")
	} else {
		now := time.Now()
		if dob.After(now) {
			errs.Add("dob", "Date of birth cannot be in the future")
		} else if minAge > 0 && validation.AgeAt(dob, now) < minAge {
			errs.Add("dob", "Must be at least %d years old", minAge)
		}
	}

	if errs.HasErrors() {
		return nil
	}

	return &model.Person{
		RegNo:              regNo,
		Name:               validation.SanitizeString(input.Name),
		InstitutionalEmail: input.InstitutionalEmail,
		PersonalEmail:      input.PersonalEmail,
		NationalID:         input.NationalID,
		Gender:             model.Gender(input.Gender),
		DOB:                dob,
		Phone:              input.Phone,
		Type:               personType,
	}
}

// UpdatePersonRequest represents proposed person changes. The registration
// number is immutable after creation.
type UpdatePersonRequest struct {
	RegNo         string `json:"reg_no" validate:"omitempty,min=3,max=20"`
	Name          string `json:"name" validate:"omitempty,min=2,max=100"`
	PersonalEmail string `json:"personal_email" validate:"omitempty,email,max=254"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
}

// ValidateUpdate runs all checks for changes to an existing person
func (s *PersonService) ValidateUpdate(id uint, req UpdatePersonRequest) (*model.Person, validation.Errors) {
	errs := validation.FromStruct(s.validator.ValidateStruct(req))
	if errs.HasErrors() {
		return nil, errs
	}

	var person model.Person
	if err := s.db.First(&person, id).Error; err != nil {
		errs.AddNonField("Person not found")
		return nil, errs
	}

	// Natural key is immutable after creation
	if req.RegNo != "" && validation.NormalizeCode(req.RegNo) != person.RegNo {
		errs.Add("reg_no", "Registration number cannot be changed after creation")
	}

	if req.Name != "" {
		person.Name = validation.SanitizeString(req.Name)
	}
	if req.PersonalEmail != "" {
		person.PersonalEmail = req.PersonalEmail
	}
	if req.Phone != "" {
		person.Phone = req.Phone
	}

	if errs.HasErrors() {
		return nil, errs
	}

	return &person, errs
}

// Update validates and persists person changes
func (s *PersonService) Update(actor Actor, id uint, req UpdatePersonRequest) (*model.Person, error) {
	person, errs := s.ValidateUpdate(id, req)
	if errs.HasErrors() {
		return nil, errs
	}

	if err := s.db.Save(person).Error; err != nil {
		return nil, translateStoreError("person", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Person", map[string]interface{}{"id": person.ID, "reg_no": person.RegNo})
	return person, nil
}

// Get returns one person by id with addresses and qualifications
func (s *PersonService) Get(id uint) (*model.Person, error) {
	var person model.Person
	err := s.db.Preload("Addresses").Preload("Qualifications").First(&person, id).Error
	if err != nil {
		return nil, translateStoreError("person", err)
	}
	return &person, nil
}

// GetByRegNo looks a person up by registration number, case-insensitively
func (s *PersonService) GetByRegNo(regNo string) (*model.Person, error) {
	var person model.Person
	err := s.db.Where("reg_no = ?", validation.NormalizeCode(regNo)).First(&person).Error
	if err != nil {
		return nil, translateStoreError("person", err)
	}
	return &person, nil
}

// QualificationInput represents one earned degree of a person
type QualificationInput struct {
	Degree      string `json:"degree" validate:"required,min=2,max=100"`
	Institution string `json:"institution" validate:"omitempty,max=200"`
	PassingYear int    `json:"passing_year" validate:"required,min=1950"`
}

// BuildQualifications validates a full qualification set for a person and
// returns the rows to persist. The candidate set is explicit input; nothing
// is synthesized from stored state.
func (s *PersonService) BuildQualifications(personID uint, inputs []QualificationInput) ([]model.Qualification, validation.Errors) {
	errs := validation.NewErrors()
	currentYear := time.Now().Year()

	rows := make([]model.Qualification, 0, len(inputs))
	for i, input := range inputs {
		structErrs := validation.FromStruct(s.validator.ValidateStruct(input))
		if structErrs.HasErrors() {
			errs.Add("qualifications", "Entry %d is invalid: %s", i+1, structErrs.Error())
			continue
		}
		if input.PassingYear > currentYear {
			errs.Add("qualifications", "Entry %d: passing year cannot be in the future", i+1)
			continue
		}
		rows = append(rows, model.Qualification{
			PersonID:    personID,
			Degree:      validation.SanitizeString(input.Degree),
			Institution: validation.SanitizeString(input.Institution),
			PassingYear: input.PassingYear,
		})
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return rows, errs
}

// AddQualifications validates and persists qualifications for a person
func (s *PersonService) AddQualifications(actor Actor, personID uint, inputs []QualificationInput) ([]model.Qualification, error) {
	var person model.Person
	if err := s.db.First(&person, personID).Error; err != nil {
		return nil, translateStoreError("person", err)
	}

	rows, errs := s.BuildQualifications(personID, inputs)
	if errs.HasErrors() {
		return nil, errs
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if err := s.db.Create(&rows).Error; err != nil {
		return nil, translateStoreError("qualification", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Person", map[string]interface{}{"id": personID, "qualifications_added": len(rows)})
	return rows, nil
}

// AddressInput represents a postal address of a person
type AddressInput struct {
	Street   string `json:"street" validate:"omitempty,max=200"`
	City     string `json:"city" validate:"required,max=100"`
	Province string `json:"province" validate:"omitempty,max=100"`
	Country  string `json:"country" validate:"required,max=100"`
}

// AddAddress validates and persists an address for a person
func (s *PersonService) AddAddress(actor Actor, personID uint, input AddressInput) (*model.Address, error) {
	errs := validation.FromStruct(s.validator.ValidateStruct(input))
	if errs.HasErrors() {
		return nil, errs
	}

	var person model.Person
	if err := s.db.First(&person, personID).Error; err != nil {
		return nil, translateStoreError("person", err)
	}

	addr := model.Address{
		PersonID: personID,
		Street:   validation.SanitizeString(input.Street),
		City:     validation.SanitizeString(input.City),
		Province: validation.SanitizeString(input.Province),
		Country:  validation.SanitizeString(input.Country),
	}

	if err := s.db.Create(&addr).Error; err != nil {
		return nil, translateStoreError("address", err)
	}

	s.audit.Record(actor, model.AuditActionUpdate, "Person", map[string]interface{}{"id": personID, "address_added": addr.ID})
	return &addr, nil
}
