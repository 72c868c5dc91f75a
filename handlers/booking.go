package handlers

import (
	"net/http"

	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// BookAppointmentHandler claims a slot for the authenticated subject and
// records the appointment.
func (h *HandlerBundle) BookAppointmentHandler(c *gin.Context) {
	subjectID := c.GetString("subjectID")
	var req struct {
		ProviderID string `json:"providerId" binding:"required"`
		SlotDate   string `json:"slotDate" binding:"required"`
		SlotTime   string `json:"slotTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.Booking.Book(c.Request.Context(), subjectID, req.ProviderID, req.SlotDate, req.SlotTime); err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment Booked"})
}

// CancelAppointmentSubjectHandler cancels one of the subject's own
// appointments and re-offers the slot.
func (h *HandlerBundle) CancelAppointmentSubjectHandler(c *gin.Context) {
	subjectID := c.GetString("subjectID")
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Booking.Cancel(c.Request.Context(), req.AppointmentID, subjectID, booking.RoleSubject); err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment Cancelled"})
}

// CancelAppointmentProviderHandler cancels an appointment on behalf of its
// owning provider.
func (h *HandlerBundle) CancelAppointmentProviderHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Booking.Cancel(c.Request.Context(), req.AppointmentID, providerID, booking.RoleProvider); err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment Cancelled"})
}

// CompleteAppointmentHandler finalizes an active appointment; the slot
// stays occupied.
func (h *HandlerBundle) CompleteAppointmentHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Booking.Complete(c.Request.Context(), req.AppointmentID, providerID); err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment Completed"})
}

// ListSubjectAppointmentsHandler returns the subject's appointments,
// oldest first.
func (h *HandlerBundle) ListSubjectAppointmentsHandler(c *gin.Context) {
	subjectID := c.GetString("subjectID")
	appts, err := h.Booking.ListForSubject(c.Request.Context(), subjectID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appts})
}

// ListProviderAppointmentsHandler returns the provider's appointments,
// oldest first.
func (h *HandlerBundle) ListProviderAppointmentsHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	appts, err := h.Booking.ListForProvider(c.Request.Context(), providerID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appts})
}

// AvailableSlotsHandler returns the offerable slots for a provider over
// the rolling booking window.
func (h *HandlerBundle) AvailableSlotsHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	slots, err := h.Booking.Availability(c.Request.Context(), providerID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}
