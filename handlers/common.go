package handlers

import (
	"errors"
	"strconv"

	"github.com/campushq/lms-api/database"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils/middleware"
	"github.com/campushq/lms-api/utils/response"
	"github.com/campushq/lms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports service and database liveness
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unreachable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// RequestActor builds the acting identity for a mutation from the
// authenticated user and request metadata. Unauthenticated requests produce
// an absent actor with client metadata only.
func RequestActor(c *fiber.Ctx, audit *services.AuditService) services.Actor {
	ip := c.IP()
	ua := c.Get("User-Agent")

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == 0 {
		return services.Actor{IPAddress: ip, UserAgent: ua}
	}
	return audit.ResolveActor(userID, ip, ua)
}

// ServiceError maps service-layer errors onto HTTP responses: accumulated
// validation errors become 422 with per-field messages, conflicts and
// restricted deletes become 409, missing records become 404.
func ServiceError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return response.ValidationFields(c, verrs)
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return response.Conflict(c, conflict.Error())
	}

	var restricted *services.RestrictedError
	if errors.As(err, &restricted) {
		return response.Conflict(c, restricted.Error())
	}

	if errors.Is(err, services.ErrNotFound) {
		return response.NotFound(c, "")
	}

	return response.InternalServerError(c, "")
}

// ParseID reads a positive integer path parameter
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// ParsePagination reads page/limit query parameters with the defaults used
// across list endpoints.
func ParsePagination(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}
