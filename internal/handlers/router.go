package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/medibook/clinic-api/internal/middleware"
)

const doctorLoginURL = "/doctor/login"

// Router wires every route to its handler and gate.
func (h *Handler) Router(gate *middleware.Gate) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.Cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/admin", h.LoginAdmin)
	adminRoutes := r.Group("/admin")
	adminRoutes.Use(gate.RequireAdmin())
	{
		adminRoutes.GET("/dashboard", h.AdminDashboard)
		adminRoutes.GET("/doctors", h.ListDoctors)
		adminRoutes.POST("/doctors/:id/approve", h.ApproveDoctor)
		adminRoutes.POST("/doctors/:id/reject", h.RejectDoctor)
	}

	doctorRoutes := r.Group("/doctor")
	{
		doctorRoutes.POST("/register", h.RegisterDoctor)
		doctorRoutes.POST("/login", h.LoginDoctor)

		// The dashboard is page-shaped: an unauthenticated browser is sent
		// back to the login page instead of getting a JSON 401.
		doctorRoutes.GET("/dashboard", gate.RequireDoctorPage(doctorLoginURL), h.DoctorDashboard)

		api := doctorRoutes.Group("")
		api.Use(gate.RequireDoctor())
		{
			api.GET("/profile", h.GetDoctorProfile)
			api.POST("/profile", h.UpdateDoctorProfile)
			api.POST("/profile/picture", h.UploadProfilePicture)
			api.GET("/appointments", h.ListAppointments)
			api.POST("/appointments/:id/confirm", h.ConfirmAppointment)
			api.POST("/logout", h.LogoutDoctor)
		}
	}

	patientRoutes := r.Group("/patient")
	{
		patientRoutes.POST("/verify", h.VerifyPatient)

		api := patientRoutes.Group("")
		api.Use(gate.RequirePatient())
		{
			api.GET("/doctors", h.ListApprovedDoctors)
			api.POST("/appointments", h.BookAppointment)
		}
	}

	return r
}
