package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/clinic-api/internal/models"
)

// ConfirmParams is what the confirming doctor supplies. Message is already
// defaulted by the caller when empty.
type ConfirmParams struct {
	Date     string
	TimeSlot string
	Message  string
}

type AppointmentStore interface {
	Insert(ctx context.Context, appointment *models.Appointment) error
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// Confirm performs the pending→confirmed transition as a single
	// ownership-filtered update. A miss on either the id or the owning
	// doctorID yields ErrNotFound; the caller never learns which.
	Confirm(ctx context.Context, id primitive.ObjectID, doctorID string, params ConfirmParams) (*models.Appointment, error)
}

type mongoAppointmentStore struct {
	coll *mongo.Collection
}

func NewAppointmentStore(db *mongo.Database) AppointmentStore {
	return &mongoAppointmentStore{coll: db.Collection(appointmentsCollection)}
}

func (s *mongoAppointmentStore) Insert(ctx context.Context, appointment *models.Appointment) error {
	_, err := s.coll.InsertOne(ctx, appointment)
	return err
}

func (s *mongoAppointmentStore) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"doctorId": doctorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *mongoAppointmentStore) Confirm(ctx context.Context, id primitive.ObjectID, doctorID string, params ConfirmParams) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "doctorId": doctorID},
		bson.M{"$set": bson.M{
			"status":          models.AppointmentStatusConfirmed,
			"appointmentDate": params.Date,
			"timeSlot":        params.TimeSlot,
			"message":         params.Message,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&appointment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
