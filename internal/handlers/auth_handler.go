package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/clinic-api/internal/identifier"
	"github.com/medibook/clinic-api/internal/middleware"
	"github.com/medibook/clinic-api/internal/models"
	"github.com/medibook/clinic-api/internal/session"
	"github.com/medibook/clinic-api/internal/store"
	"github.com/medibook/clinic-api/internal/utils"
)

const codeRetries = 5

type registerDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Gender         string `json:"gender"`
	Specialization string `json:"specialization"`
	Location       string `json:"location"`
	HospitalName   string `json:"hospitalName"`
}

// RegisterDoctor creates a pending doctor account. The caller gets the
// generated doctor code back but is not logged in; login stays closed until
// an admin approves the account.
func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req registerDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.Log.WithError(err).Error("hash password")
		fail(c, http.StatusInternalServerError, "Failed to register doctor")
		return
	}

	doctor := &models.Doctor{
		ID:             primitive.NewObjectID(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Phone:          req.Phone,
		Gender:         req.Gender,
		Specialization: req.Specialization,
		Location:       req.Location,
		HospitalName:   req.HospitalName,
		Status:         models.DoctorStatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	// A code collision slipping past the pre-check is rejected by the unique
	// index; draw a fresh code and try again rather than surfacing it.
	insertErr := store.ErrDuplicateCode
	for i := 0; i < codeRetries && insertErr == store.ErrDuplicateCode; i++ {
		code, err := h.newDoctorCode(c)
		if err != nil {
			h.Log.WithError(err).Error("generate doctor code")
			fail(c, http.StatusInternalServerError, "Failed to register doctor")
			return
		}
		doctor.DoctorID = code
		insertErr = h.Doctors.Insert(c.Request.Context(), doctor)
	}

	if insertErr != nil {
		if insertErr == store.ErrDuplicate {
			fail(c, http.StatusBadRequest, "Doctor with this email already exists")
			return
		}
		h.Log.WithError(insertErr).Error("insert doctor")
		fail(c, http.StatusInternalServerError, "Failed to register doctor")
		return
	}

	h.Log.WithFields(logrus.Fields{"doctorId": doctor.DoctorID, "email": req.Email}).Info("doctor registered")
	c.JSON(http.StatusCreated, gin.H{"success": true, "doctorId": doctor.DoctorID})
}

// newDoctorCode draws codes until one is unused. The unique index on
// doctorId is the backstop if two registrations race past the check.
func (h *Handler) newDoctorCode(c *gin.Context) (string, error) {
	var code string
	var err error
	for i := 0; i < codeRetries; i++ {
		code, err = identifier.NewDoctorCode()
		if err != nil {
			return "", err
		}
		exists, err := h.Doctors.CodeExists(c.Request.Context(), code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return code, nil
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginDoctor checks approval status before the password so an unapproved
// doctor sees why login is closed rather than a credential error.
func (h *Handler) LoginDoctor(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	doctor, err := h.Doctors.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err != store.ErrNotFound {
			h.Log.WithError(err).Error("find doctor by email")
		}
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	switch doctor.Status {
	case models.DoctorStatusApproved:
	case models.DoctorStatusPending:
		fail(c, http.StatusForbidden, "Your account is pending admin approval")
		return
	default:
		fail(c, http.StatusForbidden, "Your account registration was rejected")
		return
	}

	if !utils.CheckPasswordHash(req.Password, doctor.PasswordHash) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	id, err := h.Sessions.Create(c.Request.Context(), session.Session{
		Role:     session.RoleDoctor,
		DoctorID: doctor.DoctorID,
		Email:    doctor.Email,
	})
	if err != nil {
		h.Log.WithError(err).Error("create doctor session")
		fail(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.setSessionCookie(c, id)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"doctorId":    doctor.DoctorID,
		"redirectUrl": "/doctor/dashboard",
	})
}

// LogoutDoctor destroys the server-side session. Destroying an already-gone
// session is a success; only a store failure is an error.
func (h *Handler) LogoutDoctor(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if ok {
		if err := h.Sessions.Destroy(c.Request.Context(), p.SessionID); err != nil {
			h.Log.WithError(err).Error("destroy session")
			fail(c, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginAdmin grants an admin session only on an exact match against the
// injected credentials; any other input gets the structured invalid body.
func (h *Handler) LoginAdmin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": 400, "valid": "Invalid Email!"})
		return
	}

	// The hash compare runs regardless of the email check so a matching
	// admin email cannot be probed through response timing.
	passwordOK := utils.CheckPasswordHash(req.Password, h.Cfg.AdminPasswordHash)
	if req.Email != h.Cfg.AdminEmail || !passwordOK {
		c.JSON(http.StatusBadRequest, gin.H{"status": 400, "valid": "Invalid Email!"})
		return
	}

	id, err := h.Sessions.Create(c.Request.Context(), session.Session{
		Role:  session.RoleAdmin,
		Email: req.Email,
	})
	if err != nil {
		h.Log.WithError(err).Error("create admin session")
		fail(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.setSessionCookie(c, id)
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

type verifyPatientRequest struct {
	Name   string `json:"name" binding:"required"`
	Aadhar string `json:"aadhar" binding:"required"`
	Phone  string `json:"phone"`
}

// VerifyPatient is intentionally permissive: the patient self-attests, the
// record is created on first sight, and a patient session opens the booking
// flow. There is no password for patients.
func (h *Handler) VerifyPatient(c *gin.Context) {
	var req verifyPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Name and aadhar are required")
		return
	}

	patient, err := h.Patients.Upsert(c.Request.Context(), &models.Patient{
		Name:   req.Name,
		Aadhar: req.Aadhar,
		Phone:  req.Phone,
	})
	if err != nil {
		h.Log.WithError(err).Error("upsert patient")
		fail(c, http.StatusInternalServerError, "Failed to verify patient")
		return
	}

	id, err := h.Sessions.Create(c.Request.Context(), session.Session{
		Role:        session.RolePatient,
		PatientName: patient.Name,
	})
	if err != nil {
		h.Log.WithError(err).Error("create patient session")
		fail(c, http.StatusInternalServerError, "Failed to verify patient")
		return
	}

	h.setSessionCookie(c, id)
	c.JSON(http.StatusOK, gin.H{"success": true, "redirectUrl": "/patient/doctors"})
}
