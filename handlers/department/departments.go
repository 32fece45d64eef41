package department

import (
	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// DepartmentHandler handles department-related requests
type DepartmentHandler struct {
	departments *services.DepartmentService
	audit       *services.AuditService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departments *services.DepartmentService, audit *services.AuditService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, audit: audit}
}

// ListDepartments handles GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *fiber.Ctx) error {
	rows, err := h.departments.List()
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// GetDepartment handles GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department id")
	}

	dept, err := h.departments.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, dept)
}

// CreateDepartment handles POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var req services.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	dept, err := h.departments.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, dept)
}

// UpdateDepartment handles PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department id")
	}

	var req services.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	dept, err := h.departments.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, dept)
}

// DeleteDepartment handles DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.departments.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
