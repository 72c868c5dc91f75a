package subjectRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no subject matches the given identifier.
var ErrNotFound = errors.New("subject not found")

// ErrEmailTaken is returned when registration collides with an existing
// account.
var ErrEmailTaken = errors.New("email already registered")

// SubjectRepository defines persistence for subject (patient) records.
type SubjectRepository interface {
	GetByID(ctx context.Context, id string) (*models.Subject, error)
	GetByEmail(ctx context.Context, email string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	UpdateProfile(ctx context.Context, id, name, phone string, address models.Address, dob, gender string) error
	SetImage(ctx context.Context, id, imageURL string) error
}
