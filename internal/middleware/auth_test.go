package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/medibook/clinic-api/internal/session"
)

const testCookie = "clinic_session"

type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Create(ctx context.Context, s session.Session) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionManager) Destroy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func gateRouter(sessions session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gate := NewGate(sessions, testCookie)

	r := gin.New()
	r.GET("/doctor/api", gate.RequireDoctor(), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"doctorId": p.Session.DoctorID})
	})
	r.GET("/doctor/page", gate.RequireDoctorPage("/doctor/login"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	r.GET("/admin/only", gate.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestRequireDoctorMissingCookie(t *testing.T) {
	sessions := new(MockSessionManager)
	r := gateRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctor/api", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRequireDoctorUnknownSession(t *testing.T) {
	sessions := new(MockSessionManager)
	sessions.On("Get", mock.Anything, "expired-id").Return(nil, session.ErrNotFound)
	r := gateRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctor/api", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "expired-id"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireDoctorRejectsOtherRoles(t *testing.T) {
	sessions := new(MockSessionManager)
	sessions.On("Get", mock.Anything, "patient-id").Return(&session.Session{Role: session.RolePatient}, nil)
	r := gateRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctor/api", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "patient-id"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireDoctorInstallsPrincipal(t *testing.T) {
	sessions := new(MockSessionManager)
	sessions.On("Get", mock.Anything, "good-id").Return(&session.Session{Role: session.RoleDoctor, DoctorID: "DR7KQ2MX"}, nil)
	r := gateRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctor/api", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "good-id"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DR7KQ2MX")
}

func TestRequireDoctorPageRedirectsToLogin(t *testing.T) {
	sessions := new(MockSessionManager)
	r := gateRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/doctor/page", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/doctor/login", w.Header().Get("Location"))
}

func TestRequireAdminRejectsDoctorSession(t *testing.T) {
	sessions := new(MockSessionManager)
	sessions.On("Get", mock.Anything, "doc-id").Return(&session.Session{Role: session.RoleDoctor, DoctorID: "DRAAAAAA"}, nil)
	r := gateRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/only", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "doc-id"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
