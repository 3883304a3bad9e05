package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors handlers translate into the HTTP taxonomy. ErrNotFound is
// deliberately returned for both non-existence and ownership mismatch so
// callers cannot distinguish the two. ErrDuplicateCode is split out from
// ErrDuplicate so registration can retry with a fresh code instead of
// reporting a duplicate email.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrDuplicate     = errors.New("store: duplicate key")
	ErrDuplicateCode = errors.New("store: duplicate doctor code")
)

const (
	doctorsCollection      = "doctors"
	patientsCollection     = "patients"
	appointmentsCollection = "appointments"
)

// EnsureIndexes creates the unique indexes the registration flow relies on.
// Called once at startup, before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(doctorsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(patientsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "aadhar", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
