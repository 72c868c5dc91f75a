package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("provider not found")
)

// ProviderService manages provider accounts and profiles.
type ProviderService interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, id string) (*models.Provider, error)
	List(ctx context.Context) ([]models.ProviderPublicView, error)
	UpdateProfile(ctx context.Context, id string, fees float64, address models.Address, available bool) error
	ToggleAvailability(ctx context.Context, id string) (bool, error)
	SetImage(ctx context.Context, id, imageURL string) error
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
}

// Authenticate verifies credentials and returns a signed token.
func (s *DefaultProviderService) Authenticate(ctx context.Context, email, password string) (string, error) {
	rec, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		utils.GetLogger().Error("provider lookup failed during login", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(rec.ID, "provider", tokenDuration)
}

// GetProfile returns the provider's full profile.
func (s *DefaultProviderService) GetProfile(ctx context.Context, id string) (*models.Provider, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	return rec, nil
}

// List returns every provider's public fields.
func (s *DefaultProviderService) List(ctx context.Context) ([]models.ProviderPublicView, error) {
	recs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider listing failed: %w", err)
	}
	views := make([]models.ProviderPublicView, 0, len(recs))
	for i := range recs {
		views = append(views, recs[i].PublicView())
	}
	return views, nil
}

// UpdateProfile applies the provider-editable fields. Fee changes affect
// future bookings only; amounts on existing appointments were copied at
// booking time.
func (s *DefaultProviderService) UpdateProfile(ctx context.Context, id string, fees float64, address models.Address, available bool) error {
	if fees <= 0 {
		return fmt.Errorf("fees must be positive")
	}
	if err := s.Repo.UpdateProfile(ctx, id, fees, address, available); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("profile update failed: %w", err)
	}
	return nil
}

// ToggleAvailability flips the available flag and returns the new value.
func (s *DefaultProviderService) ToggleAvailability(ctx context.Context, id string) (bool, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("provider lookup failed: %w", err)
	}

	next := !rec.Available
	if err := s.Repo.SetAvailability(ctx, id, next); err != nil {
		return false, fmt.Errorf("availability update failed: %w", err)
	}
	return next, nil
}

// SetImage stores the uploaded profile image URL.
func (s *DefaultProviderService) SetImage(ctx context.Context, id, imageURL string) error {
	if err := s.Repo.SetImage(ctx, id, imageURL); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("image update failed: %w", err)
	}
	return nil
}
