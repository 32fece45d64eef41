package enrollment

import (
	"strconv"

	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// EnrollmentHandler handles enrollment, result, transcript, and review requests
type EnrollmentHandler struct {
	enrollments *services.EnrollmentService
	transcripts *services.TranscriptService
	audit       *services.AuditService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollments *services.EnrollmentService, transcripts *services.TranscriptService, audit *services.AuditService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, transcripts: transcripts, audit: audit}
}

// ListEnrollments handles GET /api/v1/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	page, limit, offset := handlers.ParsePagination(c)
	studentID, _ := strconv.ParseUint(c.Query("student_id", "0"), 10, 32)
	allocationID, _ := strconv.ParseUint(c.Query("allocation_id", "0"), 10, 32)

	rows, total, err := h.enrollments.List(uint(studentID), uint(allocationID), limit, offset)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, rows, response.CalculatePagination(page, limit, total))
}

// GetEnrollment handles GET /api/v1/enrollments/:id
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment id")
	}

	enrollment, err := h.enrollments.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, enrollment)
}

// CreateEnrollment handles POST /api/v1/enrollments
func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	var req services.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	enrollment, err := h.enrollments.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, enrollment)
}

// DropEnrollment handles POST /api/v1/enrollments/:id/drop
func (h *EnrollmentHandler) DropEnrollment(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment id")
	}

	actor := handlers.RequestActor(c, h.audit)
	enrollment, err := h.enrollments.Drop(actor, id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, enrollment)
}

// RecordResult handles POST /api/v1/enrollments/results
func (h *EnrollmentHandler) RecordResult(c *fiber.Ctx) error {
	var req services.RecordResultRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	result, err := h.enrollments.RecordResult(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, result)
}

// CreateReview handles POST /api/v1/enrollments/reviews
func (h *EnrollmentHandler) CreateReview(c *fiber.Ctx) error {
	var req services.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	review, err := h.enrollments.CreateReview(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, review)
}

// ListReviews handles GET /api/v1/enrollments/reviews?allocation_id=N
func (h *EnrollmentHandler) ListReviews(c *fiber.Ctx) error {
	allocationID, _ := strconv.ParseUint(c.Query("allocation_id", "0"), 10, 32)
	if allocationID == 0 {
		return response.BadRequest(c, "Missing allocation_id query parameter")
	}

	rows, err := h.enrollments.ListReviews(uint(allocationID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}

// CreateTranscript handles POST /api/v1/transcripts
func (h *EnrollmentHandler) CreateTranscript(c *fiber.Ctx) error {
	var req services.CreateTranscriptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	transcript, err := h.transcripts.Create(actor, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, transcript)
}

// UpdateTranscript handles PUT /api/v1/transcripts/:id
func (h *EnrollmentHandler) UpdateTranscript(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid transcript id")
	}

	var req services.UpdateTranscriptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := handlers.RequestActor(c, h.audit)
	transcript, err := h.transcripts.Update(actor, id, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, transcript)
}

// ListTranscripts handles GET /api/v1/transcripts?student_id=N
func (h *EnrollmentHandler) ListTranscripts(c *fiber.Ctx) error {
	studentID, _ := strconv.ParseUint(c.Query("student_id", "0"), 10, 32)
	if studentID == 0 {
		return response.BadRequest(c, "Missing student_id query parameter")
	}

	rows, err := h.transcripts.ListByStudent(uint(studentID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rows)
}
