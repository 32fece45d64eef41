package audit

import (
	"strconv"
	"time"

	"github.com/campushq/lms-api/handlers"
	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// AuditHandler exposes read access to the audit trail. The trail is
// append-only; there are no mutation endpoints.
type AuditHandler struct {
	audit *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditTrail handles GET /api/v1/audit
func (h *AuditHandler) ListAuditTrail(c *fiber.Ctx) error {
	page, limit, offset := handlers.ParsePagination(c)

	var filter services.AuditListFilter
	if raw := c.Query("actor_id", ""); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			actorID := uint(id)
			filter.ActorID = &actorID
		}
	}
	if action := c.Query("action", ""); action != "" {
		filter.Action = model.AuditAction(action)
	}
	filter.EntityName = c.Query("entity", "")
	if raw := c.Query("from", ""); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.From = &t
		}
	}
	if raw := c.Query("to", ""); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.To = &t
		}
	}

	rows, total, err := h.audit.List(filter, limit, offset)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, rows, response.CalculatePagination(page, limit, total))
}

// GetAuditRecord handles GET /api/v1/audit/:id
func (h *AuditHandler) GetAuditRecord(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid audit record id")
	}

	rec, err := h.audit.Get(id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, rec)
}
