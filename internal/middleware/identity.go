package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
)

const identityKey = "identity"

// IdentityFrom returns the identity stored by JWTAuth.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	return id, ok
}

// currentUserID labels rate limit buckets; anonymous callers share "anon".
func currentUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s
	}
	return "anon"
}
