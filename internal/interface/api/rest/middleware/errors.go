package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
	"person-manager-api/internal/interface/api/rest/pagination"
	"person-manager-api/internal/interface/api/rest/validator"
)

const msgServerError = "A server error occurred. Please try again later."

type envelope struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
}

type detail struct {
	Detail string `json:"detail"`
}

// ErrorEnvelope renders the last error pushed with c.Error as
// {"success": false, "error": ...} unless the handler already responded.
// Unrecognized errors become a logged 500 with a generic message.
func ErrorEnvelope(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := resolveError(err)
		if status == http.StatusInternalServerError {
			logger.Error("unhandled error",
				zap.Error(err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
		}

		c.JSON(status, envelope{Success: false, Error: body})
	}
}

// Recovery turns a panic into the same 500 envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.Error("panic recovered",
			zap.Any("panic", rec),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Success: false, Error: msgServerError})
	})
}

func resolveError(err error) (int, any) {
	var verrs validator.Errors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, verrs
	}

	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusForbidden, detail{"Authentication credentials were not provided."}
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden, detail{"You do not have permission to perform this action."}
	case errors.Is(err, person.ErrPersonNotFound), errors.Is(err, role.ErrRoleNotFound):
		return http.StatusNotFound, detail{"Not found."}
	case errors.Is(err, pagination.ErrInvalidPage):
		return http.StatusNotFound, detail{"Invalid page."}
	case errors.Is(err, person.ErrUsernameTaken):
		return http.StatusBadRequest, validator.Errors{"username": {"A user with that username already exists."}}
	case errors.Is(err, person.ErrInvalidPhoneNumber):
		return http.StatusBadRequest, validator.Errors{"phone_number": {"Enter a valid phone number."}}
	}

	return http.StatusInternalServerError, msgServerError
}
