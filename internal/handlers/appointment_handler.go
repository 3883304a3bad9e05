package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/clinic-api/internal/middleware"
	"github.com/medibook/clinic-api/internal/models"
	"github.com/medibook/clinic-api/internal/store"
)

const notifyTimeout = 10 * time.Second

// ListAppointments returns the logged-in doctor's appointments, newest
// created first.
func (h *Handler) ListAppointments(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	appointments, err := h.Appointments.ListByDoctor(c.Request.Context(), p.Session.DoctorID)
	if err != nil {
		h.Log.WithError(err).Error("list appointments")
		fail(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

type confirmAppointmentRequest struct {
	TimeSlot        string `json:"timeSlot" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	Message         string `json:"message"`
}

// ConfirmAppointment moves an owned appointment from pending to confirmed.
// The transition is persisted first and is the source of truth; the email is
// attempted afterwards and its outcome only shows up in the response body.
// A missing appointment and one owned by another doctor are both "not found".
func (h *Handler) ConfirmAppointment(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Appointment not found")
		return
	}

	var req confirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Time slot and appointment date are required")
		return
	}

	doctor, err := h.Doctors.FindByDoctorID(c.Request.Context(), p.Session.DoctorID)
	if err != nil {
		if err == store.ErrNotFound {
			fail(c, http.StatusNotFound, "Appointment not found")
			return
		}
		h.Log.WithError(err).Error("load doctor for confirmation")
		fail(c, http.StatusInternalServerError, "Failed to confirm appointment")
		return
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Your appointment with Dr. %s is confirmed for %s at %s.",
			doctor.Name, req.AppointmentDate, req.TimeSlot)
	}

	appointment, err := h.Appointments.Confirm(c.Request.Context(), id, p.Session.DoctorID, store.ConfirmParams{
		Date:     req.AppointmentDate,
		TimeSlot: req.TimeSlot,
		Message:  message,
	})
	if err != nil {
		if err == store.ErrNotFound {
			fail(c, http.StatusNotFound, "Appointment not found")
			return
		}
		h.Log.WithError(err).Error("confirm appointment")
		fail(c, http.StatusInternalServerError, "Failed to confirm appointment")
		return
	}

	// Best-effort notification under its own deadline. Failure is logged
	// and reported as emailSent:false, never as a request failure.
	notifyCtx, cancel := context.WithTimeout(c.Request.Context(), notifyTimeout)
	defer cancel()
	result := h.Notifier.SendConfirmation(notifyCtx, appointment, doctor)
	if result.Err != nil {
		h.Log.WithError(result.Err).WithFields(logrus.Fields{
			"appointment": appointment.ID.Hex(),
			"doctorId":    doctor.DoctorID,
		}).Warn("confirmation email not sent")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"appointment": appointment,
		"emailSent":   result.Sent,
	})
}

// ListApprovedDoctors is the patient-facing booking list: approved doctors
// only, hashes excluded by serialization.
func (h *Handler) ListApprovedDoctors(c *gin.Context) {
	doctors, err := h.Doctors.ListByStatus(c.Request.Context(), models.DoctorStatusApproved)
	if err != nil {
		h.Log.WithError(err).Error("list approved doctors")
		fail(c, http.StatusInternalServerError, "Failed to load doctors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "doctors": doctors})
}

type bookAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required"`
	PatientEmail    string `json:"patientEmail" binding:"required,email"`
	PatientPhone    string `json:"patientPhone" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	TimeSlot        string `json:"timeSlot" binding:"required"`
}

// BookAppointment creates a pending appointment for an approved doctor. The
// patient name comes from the session, not the request.
func (h *Handler) BookAppointment(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	doctor, err := h.Doctors.FindByDoctorID(c.Request.Context(), req.DoctorID)
	if err != nil || doctor.Status != models.DoctorStatusApproved {
		if err != nil && err != store.ErrNotFound {
			h.Log.WithError(err).Error("load doctor for booking")
			fail(c, http.StatusInternalServerError, "Failed to book appointment")
			return
		}
		fail(c, http.StatusNotFound, "Doctor not found")
		return
	}

	appointment := &models.Appointment{
		ID:           primitive.NewObjectID(),
		DoctorID:     doctor.DoctorID,
		PatientName:  p.Session.PatientName,
		PatientEmail: req.PatientEmail,
		PatientPhone: req.PatientPhone,
		Date:         req.AppointmentDate,
		TimeSlot:     req.TimeSlot,
		Status:       models.AppointmentStatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.Appointments.Insert(c.Request.Context(), appointment); err != nil {
		h.Log.WithError(err).Error("insert appointment")
		fail(c, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "appointment": appointment})
}
