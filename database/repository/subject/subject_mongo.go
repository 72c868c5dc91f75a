package subjectRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubjectRepo implements SubjectRepository using MongoDB.
type MongoSubjectRepo struct {
	coll *mongo.Collection
}

// NewMongoSubjectRepo creates a new instance of SubjectRepository using MongoDB.
func NewMongoSubjectRepo() SubjectRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("subjects")
	repo := &MongoSubjectRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create subject indexes: %v\n", err)
	}
	return repo
}

func (r *MongoSubjectRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a subject document by ID.
func (r *MongoSubjectRepo) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&subject); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching subject with id %s: %w", id, err)
	}
	return &subject, nil
}

// GetByEmail retrieves a subject document by email.
func (r *MongoSubjectRepo) GetByEmail(ctx context.Context, email string) (*models.Subject, error) {
	var subject models.Subject
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&subject); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching subject with email %s: %w", email, err)
	}
	return &subject, nil
}

// Create inserts a new subject document.
func (r *MongoSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, subject); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// UpdateProfile applies the subject-editable profile fields.
func (r *MongoSubjectRepo) UpdateProfile(ctx context.Context, id, name, phone string, address models.Address, dob, gender string) error {
	update := bson.M{"$set": bson.M{
		"name":      name,
		"phone":     phone,
		"address":   address,
		"dob":       dob,
		"gender":    gender,
		"updatedAt": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update subject %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetImage updates the subject's profile image URL.
func (r *MongoSubjectRepo) SetImage(ctx context.Context, id, imageURL string) error {
	update := bson.M{"$set": bson.M{"image": imageURL, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set image for subject %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
