package assessment

import (
	"strconv"

	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// AssessmentHandler handles assessment, marking, and attendance requests
type AssessmentHandler struct {
	assessments *services.AssessmentService
	audit       *services.AuditService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessments *services.AssessmentService, audit *services.AuditService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments, audit: audit}
}

// ListAssessments handles GET /api/v1/assessments?allocation_id=N
func (h *AssessmentHandler) ListAssessments(c *fiber.Ctx) error {
	allocationID, _ := strconv.ParseUint(c.Query("allocation_id", "0"), 10, 32)
	if allocationID == 0 {
		return response.BadRequest(c, "Missing allocation_id query parameter")
	}

	rows, err := h.assessments.ListByAllocation(uint(allocationID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// CreateAssessment handles POST /api/v1/assessments
func (h *AssessmentHandler) CreateAssessment(c *fiber.Ctx) error {
	var req services.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	assessment, err := h.assessments.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, assessment)
}

// DeleteAssessment handles DELETE /api/v1/assessments/:id
func (h *AssessmentHandler) DeleteAssessment(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assessment id")
	}

	actor := handlers.RequestActor(c, h.audit)
	if err := h.assessments.Delete(actor, id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.NoContent(c)
}

// MarkSubmission handles POST /api/v1/assessments/marks
func (h *AssessmentHandler) MarkSubmission(c *fiber.Ctx) error {
	var req services.MarkSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	checked, err := h.assessments.MarkSubmission(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, checked)
}

// UpdateMarksRequest corrects a marked submission
type UpdateMarksRequest struct {
	ObtainedMarks float64 `json:"obtained_marks"`
}

// UpdateMarks handles PUT /api/v1/assessments/marks/:id
func (h *AssessmentHandler) UpdateMarks(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid marked submission id")
	}

	var req UpdateMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	checked, err := h.assessments.UpdateMarks(actor, id, req.ObtainedMarks)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, checked)
}

// RecordAttendance handles POST /api/v1/attendance
func (h *AssessmentHandler) RecordAttendance(c *fiber.Ctx) error {
	var req services.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	attendance, err := h.assessments.RecordAttendance(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, attendance)
}

// ListAttendance handles GET /api/v1/attendance?lecture_id=N
func (h *AssessmentHandler) ListAttendance(c *fiber.Ctx) error {
	lectureID, _ := strconv.ParseUint(c.Query("lecture_id", "0"), 10, 32)
	if lectureID == 0 {
		return response.BadRequest(c, "Missing lecture_id query parameter")
	}

	rows, err := h.assessments.ListAttendance(uint(lectureID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}
