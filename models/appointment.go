package models

import "time"

// AppointmentStatus is the lifecycle state of a ledger entry.
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is the durable ledger entry for one reservation.
//
// For a given (providerId, slotDate, slotTime) at most one appointment with
// status active or completed may exist; cancelled entries do not occupy the
// slot. Amount is copied from the provider's fee at booking time and never
// recomputed. SubjectData and ProviderData are snapshots taken at booking
// time, independent of later profile edits. Cancelled and completed are
// terminal states.
type Appointment struct {
	ID           string            `bson:"id" json:"id"`
	SubjectID    string            `bson:"subjectId" json:"subjectId"`
	ProviderID   string            `bson:"providerId" json:"providerId"`
	SlotDate     string            `bson:"slotDate" json:"slotDate"`
	SlotTime     string            `bson:"slotTime" json:"slotTime"`
	SubjectData  SubjectSnapshot   `bson:"subjectData" json:"subjectData"`
	ProviderData ProviderSnapshot  `bson:"providerData" json:"providerData"`
	Amount       float64           `bson:"amount" json:"amount"`
	Status       AppointmentStatus `bson:"status" json:"status"`
	Payment      bool              `bson:"payment" json:"payment"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
}
