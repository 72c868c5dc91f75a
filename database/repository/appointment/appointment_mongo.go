package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "subjectId", Value: 1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new ledger entry.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by ID.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// ListBySubject returns every appointment referencing the subject, oldest
// first.
func (r *MongoAppointmentRepo) ListBySubject(ctx context.Context, subjectID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"subjectId": subjectID})
}

// ListByProvider returns every appointment referencing the provider, oldest
// first.
func (r *MongoAppointmentRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"providerId": providerID})
}

func (r *MongoAppointmentRepo) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// UpdateStatus performs a conditional lifecycle transition. The filter
// matches only when the record still carries the expected status, so a
// lost race (or a transition attempted on a terminal entry) surfaces as
// ErrInvalidState instead of silently overwriting.
func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error {
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to transition appointment %s to %s: %w", id, to, err)
	}
	if res.MatchedCount == 0 {
		exists, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to transition appointment %s to %s: %w", id, to, err)
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrInvalidState
	}
	return nil
}

// MarkPaid flips payment to true. Re-marking an already-paid appointment
// matches the filter and writes the same value, a harmless no-op.
func (r *MongoAppointmentRepo) MarkPaid(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"payment": true}})
	if err != nil {
		return fmt.Errorf("failed to mark appointment %s paid: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
