package semester

import (
	"strconv"

	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// SemesterHandler handles semester and semester detail requests
type SemesterHandler struct {
	semesters *services.SemesterService
	audit     *services.AuditService
}

// NewSemesterHandler creates a new semester handler
func NewSemesterHandler(semesters *services.SemesterService, audit *services.AuditService) *SemesterHandler {
	return &SemesterHandler{semesters: semesters, audit: audit}
}

// ListSemesters handles GET /api/v1/semesters?program_id=N
func (h *SemesterHandler) ListSemesters(c *fiber.Ctx) error {
	programID, _ := strconv.ParseUint(c.Query("program_id", "0"), 10, 32)
	if programID == 0 {
		return response.BadRequest(c, "Missing program_id query parameter")
	}

	rows, err := h.semesters.ListByProgram(uint(programID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// GetSemester handles GET /api/v1/semesters/:id
func (h *SemesterHandler) GetSemester(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid semester id")
	}

	sem, err := h.semesters.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, sem)
}

// CreateSemester handles POST /api/v1/semesters
func (h *SemesterHandler) CreateSemester(c *fiber.Ctx) error {
	var req services.CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	sem, err := h.semesters.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, sem)
}

// CreateRemainingRequest fills out a program's semesters in one call
type CreateRemainingRequest struct {
	ProgramID uint   `json:"program_id"`
	From      int    `json:"from"`
	Session   string `json:"session"`
}

// CreateRemainingSemesters handles POST /api/v1/semesters/bulk. It creates
// every missing semester from the given number through the program's total,
// all or nothing.
func (h *SemesterHandler) CreateRemainingSemesters(c *fiber.Ctx) error {
	var req CreateRemainingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProgramID == 0 {
		return response.BadRequest(c, "Missing program_id")
	}
	if req.From < 1 {
		req.From = 1
	}

	actor := handlers.RequestActor(c, h.audit)
	rows, err := h.semesters.CreateRemaining(actor, req.ProgramID, req.From, req.Session)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, rows)
}

// UpdateSemester handles PUT /api/v1/semesters/:id
func (h *SemesterHandler) UpdateSemester(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid semester id")
	}

	var req services.UpdateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	sem, err := h.semesters.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, sem)
}

// DeleteSemester handles DELETE /api/v1/semesters/:id
func (h *SemesterHandler) DeleteSemester(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid semester id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.semesters.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}

// CreateSemesterDetail handles POST /api/v1/semesters/details
func (h *SemesterHandler) CreateSemesterDetail(c *fiber.Ctx) error {
	var req services.CreateSemesterDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	detail, err := h.semesters.CreateDetail(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, detail)
}

// DeleteSemesterDetail handles DELETE /api/v1/semesters/details/:id
func (h *SemesterHandler) DeleteSemesterDetail(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid semester detail id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.semesters.DeleteDetail(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
