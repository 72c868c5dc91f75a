package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testClock = func() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func testProvider() *models.Provider {
	return &models.Provider{
		ID:          "prov-1",
		Name:        "Dr. Adams",
		Speciality:  "Dermatologist",
		Fees:        80,
		Available:   true,
		SlotsBooked: map[string][]string{},
	}
}

func testSubject() *models.Subject {
	return &models.Subject{ID: "subj-1", Name: "Pat Doe", Email: "pat@example.com"}
}

func newTestService(prov *fakeProviderRepo, subj *fakeSubjectRepo, appt *fakeAppointmentRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Providers:    prov,
		Subjects:     subj,
		Appointments: appt,
		Logger:       zap.NewNop(),
		Now:          testClock,
	}
}

func TestBookSuccess(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	apptRepo := newFakeAppointmentRepo()
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), apptRepo)

	appt, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, appt.Status)
	assert.False(t, appt.Payment)
	assert.Equal(t, 80.0, appt.Amount)
	assert.Equal(t, "Dr. Adams", appt.ProviderData.Name)
	assert.Equal(t, "Pat Doe", appt.SubjectData.Name)
	assert.Equal(t, []string{"10:00 AM"}, provRepo.bookedSlots("prov-1", "2_3_2026"))

	stored, err := apptRepo.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, stored.ID)
}

func TestBookSnapshotsAreFrozen(t *testing.T) {
	prov := testProvider()
	provRepo := newFakeProviderRepo(prov)
	apptRepo := newFakeAppointmentRepo()
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), apptRepo)

	appt, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	require.NoError(t, err)

	// Later profile edits must not rewrite history.
	prov.Name = "Dr. Renamed"
	prov.Fees = 200

	stored, err := apptRepo.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Adams", stored.ProviderData.Name)
	assert.Equal(t, 80.0, stored.Amount)
}

func TestBookProviderUnavailable(t *testing.T) {
	prov := testProvider()
	prov.Available = false
	svc := newTestService(newFakeProviderRepo(prov), newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())

	_, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestBookUnknownProviderAndSubject(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(testProvider()), newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())

	_, err := svc.Book(context.Background(), "subj-1", "nope", "2_3_2026", "10:00 AM")
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = svc.Book(context.Background(), "nope", "prov-1", "2_3_2026", "10:00 AM")
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestBookRejectsMalformedSlot(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())

	for _, tc := range []struct{ slotDate, slotTime string }{
		{"2026-03-02", "10:00 AM"},
		{"2_3_2026", "10:15 AM"},
		{"1_3_2026", "10:00 AM"},
		{"9_3_2026", "10:00 AM"},
	} {
		_, err := svc.Book(context.Background(), "subj-1", "prov-1", tc.slotDate, tc.slotTime)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	}
	assert.Empty(t, provRepo.bookedSlots("prov-1", "2_3_2026"))
}

func TestBookSlotTaken(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())

	_, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookConcurrentSingleWinner(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	apptRepo := newFakeAppointmentRepo()
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), apptRepo)

	const contenders = 16
	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "05:00 PM")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, taken int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			taken++
		default:
			t.Errorf("unexpected booking error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, contenders-1, taken)
	assert.Equal(t, []string{"05:00 PM"}, provRepo.bookedSlots("prov-1", "2_3_2026"))

	appts, err := apptRepo.ListByProvider(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Len(t, appts, 1)
}

func TestBookRollsBackClaimOnLedgerFailure(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	apptRepo := newFakeAppointmentRepo()
	apptRepo.failCreate = errLedgerDown
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), apptRepo)

	_, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	require.Error(t, err)
	assert.ErrorIs(t, err, errLedgerDown)

	// The claim must not survive the failed insert.
	assert.Empty(t, provRepo.bookedSlots("prov-1", "2_3_2026"))

	apptRepo.failCreate = nil
	_, err = svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	assert.NoError(t, err)
}

func TestAvailabilityUnavailableProviderHasNoSlots(t *testing.T) {
	prov := testProvider()
	prov.Available = false
	svc := newTestService(newFakeProviderRepo(prov), newFakeSubjectRepo(), newFakeAppointmentRepo())

	days, err := svc.Availability(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestAvailabilityReflectsBookedSlots(t *testing.T) {
	provRepo := newFakeProviderRepo(testProvider())
	svc := newTestService(provRepo, newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())

	_, err := svc.Book(context.Background(), "subj-1", "prov-1", "2_3_2026", "10:00 AM")
	require.NoError(t, err)

	days, err := svc.Availability(context.Background(), "prov-1")
	require.NoError(t, err)
	require.NotEmpty(t, days)
	for _, slot := range days[0].Slots {
		assert.NotEqual(t, "10:00 AM", slot.Time)
	}
}

type recordedReminder struct {
	payload models.ReminderPayload
	fireAt  time.Time
}

type fakeReminderScheduler struct {
	mu        sync.Mutex
	scheduled []recordedReminder
}

func (f *fakeReminderScheduler) ScheduleReminder(_ context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, recordedReminder{payload, fireAt})
	return nil
}

func TestBookSchedulesReminderAnHourBefore(t *testing.T) {
	scheduler := &fakeReminderScheduler{}
	svc := newTestService(newFakeProviderRepo(testProvider()), newFakeSubjectRepo(testSubject()), newFakeAppointmentRepo())
	svc.Reminders = scheduler

	appt, err := svc.Book(context.Background(), "subj-1", "prov-1", "3_3_2026", "10:00 AM")
	require.NoError(t, err)

	require.Len(t, scheduler.scheduled, 1)
	assert.Equal(t, appt.ID, scheduler.scheduled[0].payload.AppointmentID)
	assert.Equal(t, time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC), scheduler.scheduled[0].fireAt)
}
