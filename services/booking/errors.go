package booking

import "errors"

// Business-rule failures returned to callers as structured, non-fatal
// responses. Storage and IO failures are NOT in this list; they wrap the
// underlying error and surface as a generic internal failure.
var (
	ErrProviderNotFound    = errors.New("provider not found")
	ErrProviderUnavailable = errors.New("provider not available")
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotTaken means another request won the claim race. The booking
	// is rejected outright; there is no retry-and-overwrite.
	ErrSlotTaken = errors.New("slot not available")

	// ErrInvalidState means the operation is illegal for the appointment's
	// current status, e.g. cancelling a completed appointment.
	ErrInvalidState = errors.New("appointment already cancelled or completed")

	// ErrNotAllowed means the requester is neither the appointment's
	// subject nor its owning provider.
	ErrNotAllowed = errors.New("unauthorized action")

	// ErrInvalidSlot wraps slot re-validation failures (malformed date or
	// time, outside the working grid or booking window).
	ErrInvalidSlot = errors.New("invalid slot")
)
