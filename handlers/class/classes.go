package class

import (
	"strconv"

	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// ClassHandler handles batch/class requests
type ClassHandler struct {
	classes *services.ClassService
	audit   *services.AuditService
}

// NewClassHandler creates a new class handler
func NewClassHandler(classes *services.ClassService, audit *services.AuditService) *ClassHandler {
	return &ClassHandler{classes: classes, audit: audit}
}

// ListClasses handles GET /api/v1/classes?program_id=N
func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	programID, _ := strconv.ParseUint(c.Query("program_id", "0"), 10, 32)
	if programID == 0 {
		return response.BadRequest(c, "Missing program_id query parameter")
	}

	rows, err := h.classes.ListByProgram(uint(programID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// GetClass handles GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}

	class, err := h.classes.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, class)
}

// CreateClass handles POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	var req services.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	class, err := h.classes.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, class)
}

// DeleteClass handles DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid class id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.classes.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
