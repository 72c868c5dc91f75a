// File: database/repository/provider/providerMongoCrud.go
package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a provider document by ID.
func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching provider with id %s: %w", id, err)
	}
	return &provider, nil
}

// GetByEmail retrieves a provider document by email.
func (r *MongoProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching provider with email %s: %w", email, err)
	}
	return &provider, nil
}

// List returns all provider documents.
func (r *MongoProviderRepo) List(ctx context.Context) ([]models.Provider, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("error decoding providers: %w", err)
	}
	return providers, nil
}

// Create inserts a new provider document.
func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now
	if provider.SlotsBooked == nil {
		provider.SlotsBooked = map[string][]string{}
	}

	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// UpdateProfile applies the provider-editable profile fields. The update is
// field-targeted so it never races with concurrent slot claims on the same
// document.
func (r *MongoProviderRepo) UpdateProfile(ctx context.Context, id string, fees float64, address models.Address, available bool) error {
	update := bson.M{"$set": bson.M{
		"fees":      fees,
		"address":   address,
		"available": available,
		"updatedAt": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailability toggles whether the provider accepts bookings.
func (r *MongoProviderRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	update := bson.M{"$set": bson.M{"available": available, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set availability for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetImage updates the provider's profile image URL.
func (r *MongoProviderRepo) SetImage(ctx context.Context, id, imageURL string) error {
	update := bson.M{"$set": bson.M{"image": imageURL, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set image for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
