package booking

import (
	"context"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookOne(t *testing.T, svc *DefaultBookingService) *models.Appointment {
	t.Helper()
	appt, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	require.NoError(t, err)
	return appt
}

func TestCancelBySubjectReleasesSlot(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	apptRepo := newFakeAppointmentRepo()
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), apptRepo)
	appt := bookOne(t, svc)

	require.NoError(t, svc.Cancel(context.Background(), appt.ID, "subj-1", RoleSubject))

	stored, err := apptRepo.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Empty(t, provRepo.bookedSlots("prov-1", "2_3_2026"))

	// The freed slot is offerable again and immediately rebookable.
	days, err := svc.Availability(context.Background(), "prov-1")
	require.NoError(t, err)
	found := false
	for _, slot := range days[0].Slots {
		if slot.Time == "10:00 AM" {
			found = true
		}
	}
	assert.True(t, found)

	_, err = svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	assert.NoError(t, err)
}

func TestCancelByOwningProvider(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())
	appt := bookOne(t, svc)

	assert.NoError(t, svc.Cancel(context.Background(), appt.ID, "prov-1", RoleProvider))
	assert.Empty(t, provRepo.bookedSlots("prov-1", "2_3_2026"))
}

func TestCancelRequesterMustOwnAppointment(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())
	appt := bookOne(t, svc)

	assert.ErrorIs(t, svc.Cancel(context.Background(), appt.ID, "someone-else", RoleSubject), ErrNotAllowed)
	assert.ErrorIs(t, svc.Cancel(context.Background(), appt.ID, "other-provider", RoleProvider), ErrNotAllowed)

	// The failed attempts must not have touched the slot.
	assert.Equal(t, []string{"10:00 AM"}, provRepo.bookedSlots("prov-1", "2_3_2026"))
}

func TestCancelTwiceIsInvalidState(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(testProvider()), newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())
	appt := bookOne(t, svc)

	require.NoError(t, svc.Cancel(context.Background(), appt.ID, "subj-1", RoleSubject))
	assert.ErrorIs(t, svc.Cancel(context.Background(), appt.ID, "subj-1", RoleSubject), ErrInvalidState)
}

func TestCancelUnknownAppointment(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(testProvider()), newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())
	assert.ErrorIs(t, svc.Cancel(context.Background(), "missing", "subj-1", RoleSubject), ErrAppointmentNotFound)
}

func TestCompleteKeepsSlotOccupied(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	apptRepo := newFakeAppointmentRepo()
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), apptRepo)
	appt := bookOne(t, svc)

	require.NoError(t, svc.Complete(context.Background(), appt.ID, "prov-1"))

	stored, err := apptRepo.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
	assert.Equal(t, []string{"10:00 AM"}, provRepo.bookedSlots("prov-1", "2_3_2026"))
}

func TestCompleteIsProviderOnly(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(testProvider()), newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())
	appt := bookOne(t, svc)

	assert.ErrorIs(t, svc.Complete(context.Background(), appt.ID, "other-provider"), ErrNotAllowed)
}

func TestCompletedAppointmentIsTerminal(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(testProvider()), newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())
	appt := bookOne(t, svc)

	require.NoError(t, svc.Complete(context.Background(), appt.ID, "prov-1"))
	assert.ErrorIs(t, svc.Cancel(context.Background(), appt.ID, "subj-1", RoleSubject), ErrInvalidState)
	assert.ErrorIs(t, svc.Complete(context.Background(), appt.ID, "prov-1"), ErrInvalidState)
}

func TestCancelDoesNotTouchPaidFlag(t *testing.T) {
	apptRepo := newFakeAppointmentRepo()
	svc := newTestService(newFakeProviderRepo(testProvider()), newFakeSubjectRepo(testSubject()), apptRepo)
	appt := bookOne(t, svc)

	require.NoError(t, apptRepo.MarkPaid(context.Background(), appt.ID))
	require.NoError(t, svc.Cancel(context.Background(), appt.ID, "subj-1", RoleSubject))

	stored, err := apptRepo.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.True(t, stored.Payment)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}
