package booking

import (
	"context"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	providerRepo "medibook/database/repository/provider"
	subjectRepo "medibook/database/repository/subject"
	"medibook/models"
	"medibook/services/availability"

	"go.uber.org/zap"
)

// RequesterRole identifies which party is driving a lifecycle transition.
type RequesterRole string

const (
	RoleSubject  RequesterRole = "subject"
	RoleProvider RequesterRole = "provider"
)

// BookingService coordinates slot claims and the appointment ledger.
type BookingService interface {
	// Availability returns the offerable slots for a provider over the
	// rolling booking window.
	Availability(ctx context.Context, providerID string) ([]availability.DaySlots, error)

	// Book atomically claims (providerID, slotDate, slotTime) and creates
	// the ledger entry.
	Book(ctx context.Context, subjectID, providerID, slotDate, slotTime string) (*models.Appointment, error)

	// Cancel transitions active→cancelled and releases the slot. The
	// requester must be the appointment's subject or its owning provider.
	Cancel(ctx context.Context, appointmentID, requesterID string, role RequesterRole) error

	// Complete transitions active→completed; provider only. The slot stays
	// occupied.
	Complete(ctx context.Context, appointmentID, providerID string) error

	ListForSubject(ctx context.Context, subjectID string) ([]models.Appointment, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Appointment, error)
}

// ReminderScheduler queues an appointment reminder to fire at the given
// time. A nil scheduler disables reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Providers    providerRepo.ProviderRepository
	Subjects     subjectRepo.SubjectRepository
	Appointments appointmentRepo.AppointmentRepository
	Reminders    ReminderScheduler
	Logger       *zap.Logger

	// Now is the clock used for availability and slot validation.
	// Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
