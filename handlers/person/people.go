package person

import (
	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// PersonHandler handles shared person record requests
type PersonHandler struct {
	people *services.PersonService
	audit  *services.AuditService
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(people *services.PersonService, audit *services.AuditService) *PersonHandler {
	return &PersonHandler{people: people, audit: audit}
}

// GetPerson handles GET /api/v1/people/:id
func (h *PersonHandler) GetPerson(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid person id")
	}

	person, err := h.people.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, person)
}

// GetPersonByRegNo handles GET /api/v1/people/regno/:regno
func (h *PersonHandler) GetPersonByRegNo(c *fiber.Ctx) error {
	regNo := c.Params("regno")
	if regNo == "" {
		return response.BadRequest(c, "Missing registration number")
	}

	person, err := h.people.GetByRegNo(regNo)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, person)
}

// UpdatePerson handles PUT /api/v1/people/:id
func (h *PersonHandler) UpdatePerson(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid person id")
	}

	var req services.UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	person, err := h.people.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, person)
}

// AddQualificationsRequest wraps the qualification entries for one person
type AddQualificationsRequest struct {
	Qualifications []services.QualificationInput `json:"qualifications"`
}

// AddQualifications handles POST /api/v1/people/:id/qualifications
func (h *PersonHandler) AddQualifications(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid person id")
	}

	var req AddQualificationsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.Qualifications) == 0 {
		return response.BadRequest(c, "No qualifications provided")
	}

	actor := handlers.RequestActor(c, h.audit)
	rows, err := h.people.AddQualifications(actor, id, req.Qualifications)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, rows)
}

// AddAddress handles POST /api/v1/people/:id/addresses
func (h *PersonHandler) AddAddress(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid person id")
	}

	var req services.AddressInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	addr, err := h.people.AddAddress(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, addr)
}
