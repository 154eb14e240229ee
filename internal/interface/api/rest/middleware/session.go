package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"person-manager-api/internal/application/ports"
	"person-manager-api/internal/domain/person"
)

const (
	CtxPerson       = "person"
	CtxSessionToken = "sessionToken"
)

// Session resolves the caller from the session cookie, or from a Bearer
// token when no cookie is sent. Unknown or expired sessions leave the
// request anonymous; the permission checks decide what that means.
func Session(authService ports.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		p, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if p != nil {
			c.Set(CtxPerson, p)
			c.Set(CtxSessionToken, token)
		}

		c.Next()
	}
}

// CurrentPerson returns the authenticated caller or nil.
func CurrentPerson(c *gin.Context) *person.Person {
	v, ok := c.Get(CtxPerson)
	if !ok {
		return nil
	}
	p, _ := v.(*person.Person)
	return p
}

func SessionToken(c *gin.Context) string { return c.GetString(CtxSessionToken) }

func sessionToken(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}

	authHeader := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		return ""
	}
	return strings.TrimSpace(tokenStr)
}
