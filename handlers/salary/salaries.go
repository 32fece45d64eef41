package salary

import (
	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// SalaryHandler handles salary payment requests
type SalaryHandler struct {
	salaries *services.SalaryService
	audit    *services.AuditService
}

// NewSalaryHandler creates a new salary handler
func NewSalaryHandler(salaries *services.SalaryService, audit *services.AuditService) *SalaryHandler {
	return &SalaryHandler{salaries: salaries, audit: audit}
}

// ListSalaries handles GET /api/v1/people/:id/salaries
func (h *SalaryHandler) ListSalaries(c *fiber.Ctx) error {
	personID, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid person id")
	}
	page, limit, offset := handlers.ParsePagination(c)

	rows, total, err := h.salaries.ListByPerson(personID, limit, offset)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, rows, response.CalculatePagination(page, limit, total))
}

// CreateSalary handles POST /api/v1/salaries
func (h *SalaryHandler) CreateSalary(c *fiber.Ctx) error {
	var req services.CreateSalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	salary, err := h.salaries.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, salary)
}

// DeleteSalary handles DELETE /api/v1/salaries/:id
func (h *SalaryHandler) DeleteSalary(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid salary id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.salaries.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
