package models

// DashboardData is the read-only derivation of one provider's ledger.
type DashboardData struct {
	Earnings           float64       `json:"earnings"`
	TotalAppointments  int           `json:"totalAppointments"`
	TotalPatients      int           `json:"totalPatients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}

// ReminderPayload is queued when a booking succeeds and fired shortly
// before the slot starts.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	SubjectID     string `json:"subjectId"`
	ProviderID    string `json:"providerId"`
	SlotDate      string `json:"slotDate"`
	SlotTime      string `json:"slotTime"`
	ProviderName  string `json:"providerName"`
}
