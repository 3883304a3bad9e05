package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/clinic-api/internal/middleware"
	"github.com/medibook/clinic-api/internal/models"
	"github.com/medibook/clinic-api/internal/store"
)

// DoctorDashboard returns the logged-in doctor together with their
// appointments, newest first.
func (h *Handler) DoctorDashboard(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	doctor, err := h.Doctors.FindByDoctorID(c.Request.Context(), p.Session.DoctorID)
	if err != nil {
		if err == store.ErrNotFound {
			fail(c, http.StatusNotFound, "Doctor not found")
			return
		}
		h.Log.WithError(err).Error("load doctor for dashboard")
		fail(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	appointments, err := h.Appointments.ListByDoctor(c.Request.Context(), doctor.DoctorID)
	if err != nil {
		h.Log.WithError(err).Error("load appointments for dashboard")
		fail(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"doctor":       doctor,
		"appointments": appointments,
	})
}

// GetDoctorProfile returns the doctor's own record. The password hash never
// serializes (json:"-").
func (h *Handler) GetDoctorProfile(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	doctor, err := h.Doctors.FindByDoctorID(c.Request.Context(), p.Session.DoctorID)
	if err != nil {
		if err == store.ErrNotFound {
			fail(c, http.StatusNotFound, "Doctor not found")
			return
		}
		h.Log.WithError(err).Error("load doctor profile")
		fail(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "doctor": doctor})
}

// UpdateDoctorProfile accepts the fixed mutable field set and returns the
// updated record.
func (h *Handler) UpdateDoctorProfile(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var req models.DoctorProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	doctor, err := h.Doctors.UpdateProfile(c.Request.Context(), p.Session.DoctorID, req)
	if err != nil {
		if err == store.ErrNotFound {
			fail(c, http.StatusNotFound, "Doctor not found")
			return
		}
		h.Log.WithError(err).Error("update doctor profile")
		fail(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "doctor": doctor})
}

// UploadProfilePicture proxies the file to the media host and persists the
// returned URL on the doctor record.
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	fileHeader, err := c.FormFile("profilePicture")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.Uploader.UploadProfilePicture(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.Log.WithError(err).Error("upload profile picture")
		fail(c, http.StatusInternalServerError, "Failed to upload profile picture")
		return
	}

	if err := h.Doctors.SetProfilePicture(c.Request.Context(), p.Session.DoctorID, result.URL); err != nil {
		h.Log.WithError(err).Error("persist profile picture url")
		fail(c, http.StatusInternalServerError, "Failed to save profile picture")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profilePicture": result.URL})
}
