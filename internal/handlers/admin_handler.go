package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/medibook/clinic-api/internal/models"
	"github.com/medibook/clinic-api/internal/store"
)

// AdminDashboard returns doctor counts by approval status.
func (h *Handler) AdminDashboard(c *gin.Context) {
	counts, err := h.Doctors.CountByStatus(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("count doctors by status")
		fail(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "doctors": counts})
}

// ListDoctors returns every doctor, optionally filtered by ?status=.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Doctors.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.Log.WithError(err).Error("list doctors")
		fail(c, http.StatusInternalServerError, "Failed to load doctors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "doctors": doctors})
}

// ApproveDoctor opens login for a registered doctor.
func (h *Handler) ApproveDoctor(c *gin.Context) {
	h.setDoctorStatus(c, models.DoctorStatusApproved)
}

// RejectDoctor closes login permanently for a registered doctor.
func (h *Handler) RejectDoctor(c *gin.Context) {
	h.setDoctorStatus(c, models.DoctorStatusRejected)
}

func (h *Handler) setDoctorStatus(c *gin.Context, status string) {
	doctorID := c.Param("id")
	if err := h.Doctors.SetStatus(c.Request.Context(), doctorID, status); err != nil {
		if err == store.ErrNotFound {
			fail(c, http.StatusNotFound, "Doctor not found")
			return
		}
		h.Log.WithError(err).Error("set doctor status")
		fail(c, http.StatusInternalServerError, "Failed to update doctor status")
		return
	}

	h.Log.WithFields(logrus.Fields{"doctorId": doctorID, "status": status}).Info("doctor status updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "doctorId": doctorID, "status": status})
}
