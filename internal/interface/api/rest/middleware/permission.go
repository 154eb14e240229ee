package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"person-manager-api/internal/application/permission"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrPermissionDenied = errors.New("permission denied")
)

// RequirePermission aborts with 403 unless the caller satisfies pred.
func RequirePermission(pred permission.Predicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPerson(c)
		if pred(p) {
			c.Next()
			return
		}

		if p == nil {
			_ = c.Error(ErrNotAuthenticated)
		} else {
			_ = c.Error(ErrPermissionDenied)
		}
		c.Abort()
	}
}
