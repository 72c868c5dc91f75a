package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "medibook/database/repository/provider"
	subjectRepo "medibook/database/repository/subject"
	"medibook/models"
	"medibook/services/availability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Availability computes the offerable slots for a provider. The read is
// unsynchronized against concurrent claims: a stale snapshot only means a
// later booking attempt gets rejected with ErrSlotTaken, never a silent
// double-book, because the claim itself is re-validated atomically.
func (s *DefaultBookingService) Availability(ctx context.Context, providerID string) ([]availability.DaySlots, error) {
	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("availability lookup failed: %w", err)
	}
	if !provider.Available {
		return []availability.DaySlots{}, nil
	}
	return availability.OfferableSlots(s.now(), provider.SlotsBooked), nil
}

// Book claims the slot key and appends the ledger entry.
//
// The claim is the atomic step: the repository only inserts the slot label
// when it is absent, so N concurrent requests for the same key produce one
// winner and N-1 ErrSlotTaken. If the ledger insert fails after the claim
// succeeded, the claim is rolled back so neither side partially applies.
func (s *DefaultBookingService) Book(ctx context.Context, subjectID, providerID, slotDate, slotTime string) (*models.Appointment, error) {
	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("provider lookup failed: %w", err)
	}
	if !provider.Available {
		return nil, ErrProviderUnavailable
	}

	subject, err := s.Subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, subjectRepo.ErrNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("subject lookup failed: %w", err)
	}

	// Never trust the caller beyond format: the pair must be a slot the
	// engine could offer for that date.
	slotStart, err := availability.ValidateSlot(s.now(), slotDate, slotTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	if err := s.Providers.ClaimSlot(ctx, providerID, slotDate, slotTime); err != nil {
		if errors.Is(err, providerRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("slot claim failed: %w", err)
	}

	appt := &models.Appointment{
		ID:           uuid.New().String(),
		SubjectID:    subjectID,
		ProviderID:   providerID,
		SlotDate:     slotDate,
		SlotTime:     slotTime,
		SubjectData:  subject.Snapshot(),
		ProviderData: provider.Snapshot(),
		Amount:       provider.Fees,
		Status:       models.StatusActive,
		Payment:      false,
		CreatedAt:    s.now(),
	}

	if err := s.Appointments.Create(ctx, appt); err != nil {
		// Roll back the claim so the slot set and the ledger stay
		// consistent with each other.
		if relErr := s.Providers.ReleaseSlot(ctx, providerID, slotDate, slotTime); relErr != nil {
			s.logger().Error("failed to roll back slot claim after ledger write failure",
				zap.String("providerId", providerID),
				zap.String("slotDate", slotDate),
				zap.String("slotTime", slotTime),
				zap.Error(relErr))
		}
		return nil, fmt.Errorf("ledger write failed: %w", err)
	}

	s.scheduleReminder(ctx, appt, slotStart)

	s.logger().Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("providerId", providerID),
		zap.String("slotDate", slotDate),
		zap.String("slotTime", slotTime))
	return appt, nil
}

// scheduleReminder queues a reminder an hour before the slot. Reminder
// failures never fail the booking.
func (s *DefaultBookingService) scheduleReminder(ctx context.Context, appt *models.Appointment, slotStart time.Time) {
	if s.Reminders == nil {
		return
	}
	fireAt := slotStart.Add(-time.Hour)
	if fireAt.Before(s.now()) {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		SubjectID:     appt.SubjectID,
		ProviderID:    appt.ProviderID,
		SlotDate:      appt.SlotDate,
		SlotTime:      appt.SlotTime,
		ProviderName:  appt.ProviderData.Name,
	}
	if err := s.Reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
		s.logger().Warn("failed to schedule appointment reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// ListForSubject returns the subject's appointments.
func (s *DefaultBookingService) ListForSubject(ctx context.Context, subjectID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing subject appointments failed: %w", err)
	}
	return appts, nil
}

// ListForProvider returns the provider's appointments.
func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("listing provider appointments failed: %w", err)
	}
	return appts, nil
}
