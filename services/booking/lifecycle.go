package booking

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"

	"go.uber.org/zap"
)

// Cancel transitions an active appointment to cancelled and releases its
// slot so the very next availability computation offers it again.
//
// Cancelling an already-cancelled or completed appointment is an error,
// not a no-op: the transition is a conditional write on status=active, so
// a double cancel surfaces as ErrInvalidState.
func (s *DefaultBookingService) Cancel(ctx context.Context, appointmentID, requesterID string, role RequesterRole) error {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	switch role {
	case RoleSubject:
		if appt.SubjectID != requesterID {
			return ErrNotAllowed
		}
	case RoleProvider:
		if appt.ProviderID != requesterID {
			return ErrNotAllowed
		}
	default:
		return ErrNotAllowed
	}

	if err := s.Appointments.UpdateStatus(ctx, appointmentID, models.StatusActive, models.StatusCancelled); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrInvalidState):
			return ErrInvalidState
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("cancel transition failed: %w", err)
	}

	// The release participates in the same per-provider update discipline
	// as claims, so it cannot drop a concurrent booking's claim.
	if err := s.Providers.ReleaseSlot(ctx, appt.ProviderID, appt.SlotDate, appt.SlotTime); err != nil {
		s.logger().Error("appointment cancelled but slot release failed",
			zap.String("appointmentId", appointmentID),
			zap.String("providerId", appt.ProviderID),
			zap.Error(err))
		return fmt.Errorf("slot release failed: %w", err)
	}

	s.logger().Info("appointment cancelled",
		zap.String("appointmentId", appointmentID),
		zap.String("requester", requesterID))
	return nil
}

// Complete transitions an active appointment to completed. Only the owning
// provider may complete; the slot stays historically occupied.
func (s *DefaultBookingService) Complete(ctx context.Context, appointmentID, providerID string) error {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.ProviderID != providerID {
		return ErrNotAllowed
	}

	if err := s.Appointments.UpdateStatus(ctx, appointmentID, models.StatusActive, models.StatusCompleted); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrInvalidState):
			return ErrInvalidState
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("complete transition failed: %w", err)
	}

	s.logger().Info("appointment completed",
		zap.String("appointmentId", appointmentID),
		zap.String("providerId", providerID))
	return nil
}

func (s *DefaultBookingService) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointment lookup failed: %w", err)
	}
	return appt, nil
}
