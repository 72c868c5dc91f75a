package handlers

import (
	"errors"
	"net/http"

	"medibook/services/booking"
	"medibook/services/payment"
	providerSvc "medibook/services/provider"
	subjectSvc "medibook/services/subject"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// failFromError maps a service error onto an HTTP status and the standard
// {success:false, message} body. Unrecognized errors are logged and
// answered with a generic 500 so storage details never leak.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrProviderNotFound),
		errors.Is(err, booking.ErrSubjectNotFound),
		errors.Is(err, booking.ErrAppointmentNotFound),
		errors.Is(err, subjectSvc.ErrNotFound),
		errors.Is(err, providerSvc.ErrNotFound):
		utils.JSONFail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrNotAllowed):
		utils.JSONFail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrInvalidState):
		utils.JSONFail(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrProviderUnavailable),
		errors.Is(err, booking.ErrInvalidSlot):
		utils.JSONFail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, payment.ErrAppointmentUnavailable),
		errors.Is(err, payment.ErrVerificationFailed),
		errors.Is(err, payment.ErrUnknownOrder):
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, subjectSvc.ErrInvalidCredentials),
		errors.Is(err, providerSvc.ErrInvalidCredentials):
		utils.JSONFail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, subjectSvc.ErrEmailTaken),
		errors.Is(err, subjectSvc.ErrWeakPassword):
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
	default:
		utils.GetLogger().Error("Unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
		utils.JSONFail(c, http.StatusInternalServerError, "something went wrong")
	}
}
