package allocation

import (
	"strconv"

	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// AllocationHandler handles course allocation and lecture requests
type AllocationHandler struct {
	allocations *services.AllocationService
	audit       *services.AuditService
}

// NewAllocationHandler creates a new allocation handler
func NewAllocationHandler(allocations *services.AllocationService, audit *services.AuditService) *AllocationHandler {
	return &AllocationHandler{allocations: allocations, audit: audit}
}

// ListAllocations handles GET /api/v1/allocations
func (h *AllocationHandler) ListAllocations(c *fiber.Ctx) error {
	page, limit, offset := handlers.ParsePagination(c)
	facultyID, _ := strconv.ParseUint(c.Query("faculty_id", "0"), 10, 32)
	courseID, _ := strconv.ParseUint(c.Query("course_id", "0"), 10, 32)
	session := c.Query("session", "")

	rows, total, err := h.allocations.List(uint(facultyID), uint(courseID), session, limit, offset)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, rows, response.CalculatePagination(page, limit, total))
}

// GetAllocation handles GET /api/v1/allocations/:id
func (h *AllocationHandler) GetAllocation(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid allocation id")
	}

	allocation, err := h.allocations.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, allocation)
}

// CreateAllocation handles POST /api/v1/allocations
func (h *AllocationHandler) CreateAllocation(c *fiber.Ctx) error {
	var req services.CreateAllocationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	allocation, err := h.allocations.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, allocation)
}

// UpdateStatusRequest changes an allocation's lifecycle status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateAllocationStatus handles PATCH /api/v1/allocations/:id/status
func (h *AllocationHandler) UpdateAllocationStatus(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid allocation id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	allocation, err := h.allocations.UpdateAllocationStatus(actor, id, req.Status)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, allocation)
}

// DeleteAllocation handles DELETE /api/v1/allocations/:id
func (h *AllocationHandler) DeleteAllocation(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid allocation id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.allocations.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}

// ListLectures handles GET /api/v1/allocations/:id/lectures
func (h *AllocationHandler) ListLectures(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid allocation id")
	}

	rows, err := h.allocations.ListLectures(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// CreateLecture handles POST /api/v1/allocations/:id/lectures
func (h *AllocationHandler) CreateLecture(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid allocation id")
	}

	var req services.CreateLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	lecture, err := h.allocations.CreateLecture(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, lecture)
}

// DeleteLecture handles DELETE /api/v1/lectures/:id
func (h *AllocationHandler) DeleteLecture(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lecture id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.allocations.DeleteLecture(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
