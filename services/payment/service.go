package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"

	"go.uber.org/zap"
)

// CreateOrder issues a gateway order for an appointment's fee.
func (s *DefaultPaymentService) CreateOrder(ctx context.Context, appointmentID string) (*models.PaymentOrder, error) {
	appt, err := s.payableAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	amountMinor := amountInMinorUnits(appt.Amount)

	order, err := s.Gateway.CreateOrder(ctx, amountMinor, s.Currency, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("gateway order creation failed: %w", err)
	}

	if err := s.Orders.Save(ctx, order.ID, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to record order mapping: %w", err)
	}

	s.logger().Info("payment order created",
		zap.String("appointmentId", appointmentID),
		zap.String("orderId", order.ID),
		zap.Int64("amount", amountMinor))
	return order, nil
}

// VerifyOrderSignature checks the gateway's signed confirmation and marks
// the appointment paid on a match. Marking an already-paid appointment is a
// no-op, so duplicate confirmations cannot duplicate financial state.
func (s *DefaultPaymentService) VerifyOrderSignature(ctx context.Context, orderID, paymentID, signature string) error {
	if !VerifySignature(orderID, paymentID, signature, s.KeySecret) {
		s.logger().Warn("payment signature mismatch", zap.String("orderId", orderID))
		return ErrVerificationFailed
	}

	appointmentID, err := s.Orders.Lookup(ctx, orderID)
	if err != nil {
		return fmt.Errorf("order lookup failed: %w", err)
	}
	if appointmentID == "" {
		return ErrUnknownOrder
	}

	if err := s.Appointments.MarkPaid(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return ErrAppointmentUnavailable
		}
		return fmt.Errorf("failed to mark appointment paid: %w", err)
	}

	s.logger().Info("payment verified",
		zap.String("appointmentId", appointmentID),
		zap.String("orderId", orderID))
	return nil
}

// amountInMinorUnits converts a fee to the gateway's minor currency units.
// Rounding, not truncation: fees like 19.99 sit just below their exact
// float representation and would otherwise lose a cent.
func amountInMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (s *DefaultPaymentService) payableAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrAppointmentUnavailable
		}
		return nil, fmt.Errorf("appointment lookup failed: %w", err)
	}
	if appt.Status == models.StatusCancelled {
		return nil, ErrAppointmentUnavailable
	}
	return appt, nil
}

// VerifySignature reports whether signature is the HMAC-SHA256 of
// "orderID|paymentID" under secret, hex encoded. The comparison is
// constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
