package providerRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no provider matches the given identifier.
var ErrNotFound = errors.New("provider not found")

// ErrSlotTaken is returned when a slot claim loses the race: the slot label
// was already present in the provider's booked set for that date.
var ErrSlotTaken = errors.New("slot already booked")

// ProviderRepository defines persistence for provider records and their
// booked-slot sets.
//
// ClaimSlot and ReleaseSlot are the only mutators of SlotsBooked. Both must
// be atomic per provider: the membership check and the mutation happen as a
// single conditional update, so concurrent claims of the same slot key
// resolve to exactly one winner and claims on different providers never
// block each other.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	List(ctx context.Context) ([]models.Provider, error)
	Create(ctx context.Context, provider *models.Provider) error

	// UpdateProfile applies the provider-editable profile fields.
	UpdateProfile(ctx context.Context, id string, fees float64, address models.Address, available bool) error
	SetAvailability(ctx context.Context, id string, available bool) error
	SetImage(ctx context.Context, id, imageURL string) error

	// ClaimSlot inserts slotTime into the provider's booked set for
	// slotDate iff it is not already present; otherwise ErrSlotTaken.
	// It never overwrites an existing claim.
	ClaimSlot(ctx context.Context, providerID, slotDate, slotTime string) error

	// ReleaseSlot removes slotTime from the booked set, making the slot
	// offerable again. Removing an absent label is a no-op.
	ReleaseSlot(ctx context.Context, providerID, slotDate, slotTime string) error
}
