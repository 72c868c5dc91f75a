package handlers

import (
	"errors"
	"io"
	"net/http"

	"medibook/models"
	"medibook/services/payment"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreatePaymentOrderHandler issues a gateway order for an appointment's
// fee. The order amount is in minor currency units.
func (h *HandlerBundle) CreatePaymentOrderHandler(c *gin.Context) {
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Payment.CreateOrder(c.Request.Context(), req.AppointmentID)
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// VerifyPaymentHandler checks the gateway's signed confirmation and marks
// the appointment paid on a match.
func (h *HandlerBundle) VerifyPaymentHandler(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Payment.VerifyOrderSignature(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature); err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment Successful"})
}

// CreateCheckoutSessionHandler issues a hosted checkout session for an
// appointment and returns its redirect URL.
func (h *HandlerBundle) CreateCheckoutSessionHandler(c *gin.Context) {
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := h.Payment.CreateCheckoutSession(c.Request.Context(), req.AppointmentID, c.GetHeader("Origin"))
	if err != nil {
		failFromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session_url": url})
}

// PaymentWebhookHandler receives gateway event deliveries. The raw body is
// verified against the signature header before any parsing; a non-200
// answer makes the gateway retry the delivery.
func (h *HandlerBundle) PaymentWebhookHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "unreadable request body")
		return
	}

	if err := h.Payment.HandleWebhookEvent(c.Request.Context(), body, c.GetHeader("Stripe-Signature")); err != nil {
		if errors.Is(err, payment.ErrVerificationFailed) {
			utils.JSONFail(c, http.StatusBadRequest, "webhook signature verification failed")
			return
		}
		utils.GetLogger().Error("Webhook processing failed", zap.Error(err))
		utils.JSONFail(c, http.StatusInternalServerError, "webhook processing failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
