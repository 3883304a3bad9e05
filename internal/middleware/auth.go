package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/clinic-api/internal/session"
)

const principalKey = "clinic.principal"

// Principal is the typed request context the gates install: the resolved
// session plus the cookie id, which logout needs to destroy the record.
type Principal struct {
	SessionID string
	Session   *session.Session
}

// Gate resolves the session cookie and enforces per-actor access. One gate
// instance serves every route group.
type Gate struct {
	sessions   session.Manager
	cookieName string
}

func NewGate(sessions session.Manager, cookieName string) *Gate {
	return &Gate{sessions: sessions, cookieName: cookieName}
}

// RequireDoctor guards API-shaped doctor routes: no valid doctor session
// means a 401 JSON failure.
func (g *Gate) RequireDoctor() gin.HandlerFunc {
	return g.require(session.RoleDoctor, "")
}

// RequireDoctorPage guards page-shaped doctor routes: the browser is sent
// back to the login entry point instead of receiving a JSON error.
func (g *Gate) RequireDoctorPage(loginURL string) gin.HandlerFunc {
	return g.require(session.RoleDoctor, loginURL)
}

func (g *Gate) RequirePatient() gin.HandlerFunc {
	return g.require(session.RolePatient, "")
}

func (g *Gate) RequireAdmin() gin.HandlerFunc {
	return g.require(session.RoleAdmin, "")
}

func (g *Gate) require(role, redirectURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(g.cookieName)
		if err != nil || id == "" {
			g.deny(c, redirectURL)
			return
		}

		s, err := g.sessions.Get(c.Request.Context(), id)
		if err != nil || s.Role != role {
			g.deny(c, redirectURL)
			return
		}

		c.Set(principalKey, &Principal{SessionID: id, Session: s})
		c.Next()
	}
}

func (g *Gate) deny(c *gin.Context, redirectURL string) {
	if redirectURL != "" {
		c.Redirect(http.StatusSeeOther, redirectURL)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Authentication required",
	})
}

// CurrentPrincipal returns the principal a gate installed for this request.
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}
