// Package rayid tags every request with an id for log correlation.
package rayid

import (
	"feedme/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the id. An incoming value in the
// same header is kept so callers can correlate across services.
const HeaderName = "X-Ray-ID"

// New returns the middleware.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The header value aliases the request buffer, so it is copied.
		id := utils.CopyString(c.Get(HeaderName))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
