package payment

import (
	"context"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"

	"go.uber.org/zap"
)

// PaymentService validates externally-issued payment confirmations and
// marks ledger entries paid. It writes only the payment flag of an existing
// entry, never slot state.
type PaymentService interface {
	// CreateOrder issues a gateway order for the appointment's fee, in
	// minor currency units. Cancelled or missing appointments are
	// rejected before the gateway is contacted.
	CreateOrder(ctx context.Context, appointmentID string) (*models.PaymentOrder, error)

	// VerifyOrderSignature checks the gateway's HMAC confirmation of
	// (orderID, paymentID) and, on a match, marks the referenced
	// appointment paid. A mismatch leaves the ledger untouched.
	VerifyOrderSignature(ctx context.Context, orderID, paymentID, signature string) error

	// CreateCheckoutSession issues a hosted checkout session for the
	// appointment and returns its URL.
	CreateCheckoutSession(ctx context.Context, appointmentID, origin string) (string, error)

	// HandleWebhookEvent verifies the raw webhook body against the
	// signature header before parsing it, marks the referenced
	// appointment paid on payment-success events, and acknowledges
	// everything else. Verification failure is an error so the transport
	// can answer non-200 and the gateway retries.
	HandleWebhookEvent(ctx context.Context, body []byte, sigHeader string) error
}

// OrderGateway creates orders at the payment gateway.
type OrderGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*models.PaymentOrder, error)
}

// OrderStore persists the order→appointment mapping between order issue and
// signature verification.
type OrderStore interface {
	Save(ctx context.Context, orderID, appointmentID string) error
	Lookup(ctx context.Context, orderID string) (string, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Gateway      OrderGateway
	Orders       OrderStore

	// KeySecret signs the order-confirmation HMAC; WebhookSecret verifies
	// webhook deliveries. Both schemes fail closed.
	KeySecret     string
	WebhookSecret string
	Currency      string

	Logger *zap.Logger
}

func (s *DefaultPaymentService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
