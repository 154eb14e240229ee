package rest

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"person-manager-api/internal/application/permission"
	"person-manager-api/internal/application/ports"
	"person-manager-api/internal/application/services"
	"person-manager-api/internal/interface/api/rest/dto/auth"
	"person-manager-api/internal/interface/api/rest/middleware"
	"person-manager-api/internal/interface/api/rest/validator"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
	cookie      CookieConfig
	now         func() time.Time
}

func NewAuthController(
	r gin.IRouter,
	logger *zap.Logger,
	authService ports.AuthService,
	cookie CookieConfig,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
		cookie:      cookie,
		now:         time.Now,
	}

	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteLogout, middleware.RequirePermission(permission.IsAuthenticated), ac.LogoutHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	// Login errors are rendered flat, outside the envelope. An empty body
	// falls through to the required-field checks.
	var req auth.LoginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		err = validator.BindError(err)
	} else {
		err = validator.Struct(req)
	}
	if err != nil {
		var errs validator.Errors
		if errors.As(err, &errs) {
			c.JSON(http.StatusBadRequest, errs)
			return
		}
		_ = c.Error(err)
		return
	}

	token, expiresAt, err := ac.authService.Login(c.Request.Context(), *req.Username, *req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Credentials"})
		return
	case errors.Is(err, services.ErrInactivePerson):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Inactive Person"})
		return
	case err != nil:
		_ = c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookie.Name, token, int(expiresAt.Sub(ac.now()).Seconds()), "/", "", ac.cookie.Secure, true)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged in"})
}

func (ac *AuthController) LogoutHandler(c *gin.Context) {
	if err := ac.authService.Logout(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookie.Name, "", -1, "/", "", ac.cookie.Secure, true)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
