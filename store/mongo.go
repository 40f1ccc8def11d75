package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbershop-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists appointments as documents in a single collection.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: time.Now}
}

// EnsureIndexes creates the index backing date-window queries and cleanup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create date index: %w", err)
	}
	return nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return s.find(ctx, bson.D{})
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return &appointment, nil
}

func (s *MongoStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	return s.find(ctx, bson.D{{Key: "date", Value: bson.D{
		{Key: "$gte", Value: from},
		{Key: "$lt", Value: to},
	}}})
}

func (s *MongoStore) find(ctx context.Context, filter bson.D) ([]models.Appointment, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appointments, nil
}

func (s *MongoStore) Insert(ctx context.Context, a *models.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	if patch.IsEmpty() {
		return s.FindByID(ctx, id)
	}

	set := setDocument(patch)
	set = append(set, bson.E{Key: "updatedAt", Value: s.now()})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appointment models.Appointment
	err := s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update appointment %s: %w", id, err)
	}
	return &appointment, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("delete appointment %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "date", Value: bson.D{{Key: "$lt", Value: t}}}})
	if err != nil {
		return 0, fmt.Errorf("delete appointments before %s: %w", t.Format(time.RFC3339), err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func setDocument(p models.AppointmentPatch) bson.D {
	set := bson.D{}
	if p.CustomerName != nil {
		set = append(set, bson.E{Key: "customerName", Value: *p.CustomerName})
	}
	if p.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *p.Email})
	}
	if p.Phone != nil {
		set = append(set, bson.E{Key: "phone", Value: *p.Phone})
	}
	if p.Date != nil {
		set = append(set, bson.E{Key: "date", Value: *p.Date})
	}
	if p.Time != nil {
		set = append(set, bson.E{Key: "time", Value: *p.Time})
	}
	if p.Service != nil {
		set = append(set, bson.E{Key: "service", Value: *p.Service})
	}
	if p.Artist != nil {
		set = append(set, bson.E{Key: "artist", Value: *p.Artist})
	}
	if p.Notes != nil {
		set = append(set, bson.E{Key: "notes", Value: *p.Notes})
	}
	return set
}
