package appointmentRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no appointment matches the given identifier.
var ErrNotFound = errors.New("appointment not found")

// ErrInvalidState is returned when a conditional status transition does not
// match: the appointment exists but is not in the expected state.
var ErrInvalidState = errors.New("appointment not in expected state")

// AppointmentRepository is the durable ledger of appointment records.
//
// Status transitions are conditional writes: UpdateStatus only applies when
// the record is currently in the expected state, so a terminal entry can
// never be mutated again even under concurrent requests.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListBySubject(ctx context.Context, subjectID string) ([]models.Appointment, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Appointment, error)

	// UpdateStatus transitions id from the expected status to the new one.
	// ErrInvalidState when the record exists in a different state,
	// ErrNotFound when it does not exist at all.
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error

	// MarkPaid sets payment=true. Setting it when already true is a no-op,
	// which is what makes duplicate gateway confirmations harmless.
	MarkPaid(ctx context.Context, id string) error
}
