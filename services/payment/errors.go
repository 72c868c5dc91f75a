package payment

import "errors"

var (
	// ErrAppointmentUnavailable is returned when a payable order is
	// requested for a cancelled or nonexistent appointment.
	ErrAppointmentUnavailable = errors.New("appointment cancelled or not found")

	// ErrVerificationFailed is returned for any signature mismatch, on
	// either confirmation scheme. The ledger is never touched on this
	// path.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrUnknownOrder is returned when a verified confirmation references
	// an order this service never issued.
	ErrUnknownOrder = errors.New("unknown payment order")
)
