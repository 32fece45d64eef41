package course

import (
	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course catalog requests
type CourseHandler struct {
	courses *services.CourseService
	audit   *services.AuditService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courses *services.CourseService, audit *services.AuditService) *CourseHandler {
	return &CourseHandler{courses: courses, audit: audit}
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	rows, err := h.courses.List()
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	course, err := h.courses.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, course)
}

// GetCourseByCode handles GET /api/v1/courses/code/:code
func (h *CourseHandler) GetCourseByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return response.BadRequest(c, "Missing course code")
	}

	course, err := h.courses.GetByCode(code)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req services.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	course, err := h.courses.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var req services.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	course, err := h.courses.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.courses.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}
