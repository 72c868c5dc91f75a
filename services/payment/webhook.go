package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	appointmentRepo "medibook/database/repository/appointment"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// CreateCheckoutSession issues a hosted checkout session for the
// appointment's fee. The appointment ID rides along as metadata so the
// webhook can find the ledger entry.
func (s *DefaultPaymentService) CreateCheckoutSession(ctx context.Context, appointmentID, origin string) (string, error) {
	appt, err := s.payableAppointment(ctx, appointmentID)
	if err != nil {
		return "", err
	}

	amountMinor := amountInMinorUnits(appt.Amount)
	currency := strings.ToLower(s.Currency)

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(fmt.Sprintf("%s/verify?success=true&appointmentId=%s", origin, appointmentID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/verify?success=false&appointmentId=%s", origin, appointmentID)),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Appointment Fees"),
					},
					UnitAmount: stripe.Int64(amountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"appointmentId": appointmentID},
		},
	}
	params.AddMetadata("appointmentId", appointmentID)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("checkout session creation failed: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhookEvent verifies and processes one webhook delivery.
//
// The body is verified against the signature header before any parsing:
// an unverified body is the injection vector and must never be
// unmarshalled. Verification failure returns ErrVerificationFailed so the
// transport answers non-200 and the gateway's retry policy governs
// delivery. Replayed success events are harmless because marking paid is
// idempotent.
func (s *DefaultPaymentService) HandleWebhookEvent(ctx context.Context, body []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(body, sigHeader, s.WebhookSecret)
	if err != nil {
		s.logger().Warn("webhook signature verification failed", zap.Error(err))
		return ErrVerificationFailed
	}

	var appointmentID string
	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fmt.Errorf("malformed payment_intent payload: %w", err)
		}
		appointmentID = pi.Metadata["appointmentId"]
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("malformed checkout session payload: %w", err)
		}
		appointmentID = sess.Metadata["appointmentId"]
	default:
		// Acknowledged but ignored.
		s.logger().Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}

	if appointmentID == "" {
		s.logger().Warn("payment event without appointment metadata", zap.String("eventId", event.ID))
		return nil
	}

	if err := s.Appointments.MarkPaid(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			// Permanent: retrying the delivery cannot help.
			s.logger().Warn("payment event references unknown appointment",
				zap.String("appointmentId", appointmentID))
			return nil
		}
		return fmt.Errorf("failed to mark appointment paid: %w", err)
	}

	s.logger().Info("appointment marked paid via webhook",
		zap.String("appointmentId", appointmentID),
		zap.String("eventId", event.ID))
	return nil
}
