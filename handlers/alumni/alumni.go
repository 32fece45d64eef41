package alumni

import (
	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// AlumniHandler handles alumni roll requests
type AlumniHandler struct {
	alumni *services.AlumniService
	audit  *services.AuditService
}

// NewAlumniHandler creates a new alumni handler
func NewAlumniHandler(alumni *services.AlumniService, audit *services.AuditService) *AlumniHandler {
	return &AlumniHandler{alumni: alumni, audit: audit}
}

// ListAlumni handles GET /api/v1/alumni
func (h *AlumniHandler) ListAlumni(c *fiber.Ctx) error {
	page, limit, offset := handlers.ParsePagination(c)

	rows, total, err := h.alumni.List(limit, offset)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, rows, response.CalculatePagination(page, limit, total))
}

// GetAlumni handles GET /api/v1/alumni/:id
func (h *AlumniHandler) GetAlumni(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid alumni id")
	}

	alumni, err := h.alumni.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, alumni)
}

// CreateAlumni handles POST /api/v1/alumni
func (h *AlumniHandler) CreateAlumni(c *fiber.Ctx) error {
	var req services.CreateAlumniRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	alumni, err := h.alumni.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, alumni)
}

// UpdateAlumni handles PUT /api/v1/alumni/:id
func (h *AlumniHandler) UpdateAlumni(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid alumni id")
	}

	var req services.UpdateAlumniRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	alumni, err := h.alumni.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, alumni)
}
