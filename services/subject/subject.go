package subject

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	subjectRepo "medibook/database/repository/subject"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrNotFound           = errors.New("subject not found")
)

// SubjectService manages subject accounts and profiles.
type SubjectService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, id string) (*models.Subject, error)
	UpdateProfile(ctx context.Context, id, name, phone string, address models.Address, dob, gender string) error
	SetImage(ctx context.Context, id, imageURL string) error
}

// DefaultSubjectService implements SubjectService.
type DefaultSubjectService struct {
	Repo subjectRepo.SubjectRepository
}

// Register creates an account and returns a signed token for it.
func (s *DefaultSubjectService) Register(ctx context.Context, name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &models.Subject{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Address:      models.Address{},
		Gender:       "Not Selected",
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		if errors.Is(err, subjectRepo.ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create subject: %w", err)
	}

	return utils.GenerateToken(rec.ID, "subject", tokenDuration)
}

// Authenticate verifies credentials and returns a signed token.
func (s *DefaultSubjectService) Authenticate(ctx context.Context, email, password string) (string, error) {
	rec, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, subjectRepo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		utils.GetLogger().Error("subject lookup failed during login", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(rec.ID, "subject", tokenDuration)
}

// GetProfile returns the subject's profile.
func (s *DefaultSubjectService) GetProfile(ctx context.Context, id string) (*models.Subject, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, subjectRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	return rec, nil
}

// UpdateProfile applies profile edits. Snapshots embedded in existing
// appointments are unaffected.
func (s *DefaultSubjectService) UpdateProfile(ctx context.Context, id, name, phone string, address models.Address, dob, gender string) error {
	if err := s.Repo.UpdateProfile(ctx, id, name, phone, address, dob, gender); err != nil {
		if errors.Is(err, subjectRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("profile update failed: %w", err)
	}
	return nil
}

// SetImage stores the uploaded profile image URL.
func (s *DefaultSubjectService) SetImage(ctx context.Context, id, imageURL string) error {
	if err := s.Repo.SetImage(ctx, id, imageURL); err != nil {
		if errors.Is(err, subjectRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("image update failed: %w", err)
	}
	return nil
}
