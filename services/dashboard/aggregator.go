// Package dashboard derives read-only provider metrics from the
// appointment ledger. It never mutates anything.
package dashboard

import (
	"context"
	"fmt"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
)

// LatestCount bounds the recent-activity list.
const LatestCount = 5

// DashboardService assembles one provider's dashboard.
type DashboardService interface {
	ProviderDashboard(ctx context.Context, providerID string) (*models.DashboardData, error)
}

// DefaultDashboardService implements DashboardService over the ledger.
type DefaultDashboardService struct {
	Appointments appointmentRepo.AppointmentRepository
}

// ProviderDashboard fetches the provider's ledger entries and aggregates
// them. An empty ledger yields all-zero aggregates.
func (s *DefaultDashboardService) ProviderDashboard(ctx context.Context, providerID string) (*models.DashboardData, error) {
	appts, err := s.Appointments.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard ledger fetch failed: %w", err)
	}
	data := Aggregate(appts)
	return &data, nil
}

// Aggregate derives the dashboard metrics from a ledger slice ordered
// oldest first. An appointment counts toward earnings when it is completed
// or paid; a paid-then-completed entry still counts its amount once.
func Aggregate(appts []models.Appointment) models.DashboardData {
	var earnings float64
	patients := map[string]struct{}{}

	for _, a := range appts {
		if a.Status == models.StatusCompleted || a.Payment {
			earnings += a.Amount
		}
		patients[a.SubjectID] = struct{}{}
	}

	return models.DashboardData{
		Earnings:           earnings,
		TotalAppointments:  len(appts),
		TotalPatients:      len(patients),
		LatestAppointments: latest(appts, LatestCount),
	}
}

// latest returns the last n entries in reverse chronological order.
func latest(appts []models.Appointment, n int) []models.Appointment {
	if len(appts) < n {
		n = len(appts)
	}
	out := make([]models.Appointment, 0, n)
	for i := len(appts) - 1; i >= len(appts)-n; i-- {
		out = append(out, appts[i])
	}
	return out
}
