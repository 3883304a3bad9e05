package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/medibook/clinic-api/internal/config"
	"github.com/medibook/clinic-api/internal/services"
	"github.com/medibook/clinic-api/internal/session"
	"github.com/medibook/clinic-api/internal/store"
)

// Handler carries every injected dependency the routes need. All handlers
// are methods on it; nothing reaches for globals.
type Handler struct {
	Doctors      store.DoctorStore
	Patients     store.PatientStore
	Appointments store.AppointmentStore
	Sessions     session.Manager
	Notifier     services.Notifier
	Uploader     services.Uploader
	Cfg          *config.Config
	Log          *logrus.Logger
}

func NewHandler(
	doctors store.DoctorStore,
	patients store.PatientStore,
	appointments store.AppointmentStore,
	sessions session.Manager,
	notifier services.Notifier,
	uploader services.Uploader,
	cfg *config.Config,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		Doctors:      doctors,
		Patients:     patients,
		Appointments: appointments,
		Sessions:     sessions,
		Notifier:     notifier,
		Uploader:     uploader,
		Cfg:          cfg,
		Log:          log,
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// setSessionCookie attaches the opaque session id. HttpOnly keeps it away
// from scripts; the TTL matches the server-side record's expiry.
func (h *Handler) setSessionCookie(c *gin.Context, id string) {
	c.SetCookie(h.Cfg.SessionCookie, id, int(h.Cfg.SessionTTL.Seconds()), "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.Cfg.SessionCookie, "", -1, "/", "", false, true)
}
