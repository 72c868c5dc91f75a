package booking

import (
	"context"
	"errors"
	"sync"

	appointmentRepo "medibook/database/repository/appointment"
	providerRepo "medibook/database/repository/provider"
	subjectRepo "medibook/database/repository/subject"
	"medibook/models"
)

// fakeProviderRepo keeps providers in memory. ClaimSlot and ReleaseSlot
// hold a mutex across check-and-mutate, mirroring the conditional-update
// atomicity of the real repository.
type fakeProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*models.Provider
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	r := &fakeProviderRepo{providers: map[string]*models.Provider{}}
	for _, p := range providers {
		if p.SlotsBooked == nil {
			p.SlotsBooked = map[string][]string{}
		}
		r.providers[p.ID] = p
	}
	return r
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProviderRepo) GetByEmail(context.Context, string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (r *fakeProviderRepo) List(context.Context) ([]models.Provider, error) { return nil, nil }

func (r *fakeProviderRepo) Create(_ context.Context, p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = p
	return nil
}

func (r *fakeProviderRepo) UpdateProfile(context.Context, string, float64, models.Address, bool) error {
	return nil
}

func (r *fakeProviderRepo) SetAvailability(_ context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Available = available
	return nil
}

func (r *fakeProviderRepo) SetImage(context.Context, string, string) error { return nil }

func (r *fakeProviderRepo) ClaimSlot(_ context.Context, providerID, slotDate, slotTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return providerRepo.ErrNotFound
	}
	for _, booked := range p.SlotsBooked[slotDate] {
		if booked == slotTime {
			return providerRepo.ErrSlotTaken
		}
	}
	p.SlotsBooked[slotDate] = append(p.SlotsBooked[slotDate], slotTime)
	return nil
}

func (r *fakeProviderRepo) ReleaseSlot(_ context.Context, providerID, slotDate, slotTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return providerRepo.ErrNotFound
	}
	kept := p.SlotsBooked[slotDate][:0]
	for _, booked := range p.SlotsBooked[slotDate] {
		if booked != slotTime {
			kept = append(kept, booked)
		}
	}
	p.SlotsBooked[slotDate] = kept
	return nil
}

func (r *fakeProviderRepo) bookedSlots(providerID, slotDate string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.providers[providerID].SlotsBooked[slotDate]...)
}

type fakeSubjectRepo struct {
	subjects map[string]*models.Subject
}

func newFakeSubjectRepo(subjects ...*models.Subject) *fakeSubjectRepo {
	r := &fakeSubjectRepo{subjects: map[string]*models.Subject{}}
	for _, s := range subjects {
		r.subjects[s.ID] = s
	}
	return r
}

func (r *fakeSubjectRepo) GetByID(_ context.Context, id string) (*models.Subject, error) {
	s, ok := r.subjects[id]
	if !ok {
		return nil, subjectRepo.ErrNotFound
	}
	return s, nil
}

func (r *fakeSubjectRepo) GetByEmail(context.Context, string) (*models.Subject, error) {
	return nil, subjectRepo.ErrNotFound
}

func (r *fakeSubjectRepo) Create(context.Context, *models.Subject) error { return nil }

func (r *fakeSubjectRepo) UpdateProfile(context.Context, string, string, string, models.Address, string, string) error {
	return nil
}

func (r *fakeSubjectRepo) SetImage(context.Context, string, string) error { return nil }

// fakeAppointmentRepo is an in-memory ledger with the same conditional
// transition semantics as the Mongo implementation.
type fakeAppointmentRepo struct {
	mu         sync.Mutex
	appts      map[string]*models.Appointment
	order      []string
	failCreate error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: map[string]*models.Appointment{}}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	r.order = append(r.order, appt.ID)
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeAppointmentRepo) ListBySubject(_ context.Context, subjectID string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.SubjectID == subjectID }), nil
}

func (r *fakeAppointmentRepo) ListByProvider(_ context.Context, providerID string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.ProviderID == providerID }), nil
}

func (r *fakeAppointmentRepo) list(match func(*models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, id := range r.order {
		if a, ok := r.appts[id]; ok && match(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, from, to models.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if appt.Status != from {
		return appointmentRepo.ErrInvalidState
	}
	appt.Status = to
	return nil
}

func (r *fakeAppointmentRepo) MarkPaid(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	appt.Payment = true
	return nil
}

var errLedgerDown = errors.New("ledger unavailable")
