package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/clinic-api/internal/models"
)

// PatientStore backs the permissive verify flow: a patient is looked up by
// aadhar and created on first sight.
type PatientStore interface {
	Upsert(ctx context.Context, patient *models.Patient) (*models.Patient, error)
}

type mongoPatientStore struct {
	coll *mongo.Collection
}

func NewPatientStore(db *mongo.Database) PatientStore {
	return &mongoPatientStore{coll: db.Collection(patientsCollection)}
}

func (s *mongoPatientStore) Upsert(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	var result models.Patient
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"aadhar": patient.Aadhar},
		bson.M{
			"$set": bson.M{"name": patient.Name, "phone": patient.Phone},
			"$setOnInsert": bson.M{
				"aadhar":    patient.Aadhar,
				"createdAt": time.Now().UTC(),
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
