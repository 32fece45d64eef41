package faculty

import (
	"strconv"

	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// FacultyHandler handles faculty employment requests
type FacultyHandler struct {
	faculty *services.FacultyService
	audit   *services.AuditService
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(faculty *services.FacultyService, audit *services.AuditService) *FacultyHandler {
	return &FacultyHandler{faculty: faculty, audit: audit}
}

// ListFaculty handles GET /api/v1/faculty
func (h *FacultyHandler) ListFaculty(c *fiber.Ctx) error {
	page, limit, offset := handlers.ParsePagination(c)
	departmentID, _ := strconv.ParseUint(c.Query("department_id", "0"), 10, 32)

	rows, total, err := h.faculty.List(uint(departmentID), limit, offset)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, rows, response.CalculatePagination(page, limit, total))
}

// GetFaculty handles GET /api/v1/faculty/:id
func (h *FacultyHandler) GetFaculty(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty id")
	}

	faculty, err := h.faculty.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, faculty)
}

// CreateFaculty handles POST /api/v1/faculty
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	var req services.CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	faculty, err := h.faculty.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, faculty)
}

// UpdateFaculty handles PUT /api/v1/faculty/:id
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty id")
	}

	var req services.UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	faculty, err := h.faculty.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, faculty)
}

// DeleteFaculty handles DELETE /api/v1/faculty/:id
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.faculty.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
