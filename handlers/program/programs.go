package program

import (
	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// ProgramHandler handles degree program requests
type ProgramHandler struct {
	programs *services.ProgramService
	audit    *services.AuditService
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(programs *services.ProgramService, audit *services.AuditService) *ProgramHandler {
	return &ProgramHandler{programs: programs, audit: audit}
}

// ListPrograms handles GET /api/v1/programs
func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	rows, err := h.programs.List()
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// GetProgram handles GET /api/v1/programs/:id
func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program id")
	}

	program, err := h.programs.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, program)
}

// GetProgramByCode handles GET /api/v1/programs/code/:code
func (h *ProgramHandler) GetProgramByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return response.BadRequest(c, "Missing program code")
	}

	program, err := h.programs.GetByCode(c.Context(), code)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, program)
}

// CreateProgram handles POST /api/v1/programs
func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	var req services.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	program, err := h.programs.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, program)
}

// UpdateProgram handles PUT /api/v1/programs/:id
func (h *ProgramHandler) UpdateProgram(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program id")
	}

	var req services.UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	program, err := h.programs.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, program)
}

// DeleteProgram handles DELETE /api/v1/programs/:id
func (h *ProgramHandler) DeleteProgram(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.programs.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
