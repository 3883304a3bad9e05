package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/clinic-api/internal/models"
)

// DoctorStore is the persistence boundary for doctor records. Doctors are
// addressed by their public code (doctorId), never by the raw Mongo _id.
type DoctorStore interface {
	Insert(ctx context.Context, doctor *models.Doctor) error
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	FindByDoctorID(ctx context.Context, doctorID string) (*models.Doctor, error)
	CodeExists(ctx context.Context, doctorID string) (bool, error)
	UpdateProfile(ctx context.Context, doctorID string, update models.DoctorProfileUpdate) (*models.Doctor, error)
	SetStatus(ctx context.Context, doctorID, status string) error
	SetProfilePicture(ctx context.Context, doctorID, url string) error
	ListByStatus(ctx context.Context, status string) ([]models.Doctor, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type mongoDoctorStore struct {
	coll *mongo.Collection
}

func NewDoctorStore(db *mongo.Database) DoctorStore {
	return &mongoDoctorStore{coll: db.Collection(doctorsCollection)}
}

func (s *mongoDoctorStore) Insert(ctx context.Context, doctor *models.Doctor) error {
	_, err := s.coll.InsertOne(ctx, doctor)
	if mongo.IsDuplicateKeyError(err) {
		if duplicateKeyOn(err, "doctorId") {
			return ErrDuplicateCode
		}
		return ErrDuplicate
	}
	return err
}

// duplicateKeyOn reports whether the duplicate-key error names the given
// indexed field. Mongo embeds the index name ("doctorId_1") in the write
// error message; there is no structured field for it.
func duplicateKeyOn(err error, field string) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, field) {
				return true
			}
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if strings.Contains(e.Message, field) {
				return true
			}
		}
	}
	return false
}

func (s *mongoDoctorStore) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *mongoDoctorStore) FindByDoctorID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.findOne(ctx, bson.M{"doctorId": doctorID})
}

func (s *mongoDoctorStore) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.coll.FindOne(ctx, filter).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *mongoDoctorStore) CodeExists(ctx context.Context, doctorID string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"doctorId": doctorID})
	return count > 0, err
}

func (s *mongoDoctorStore) UpdateProfile(ctx context.Context, doctorID string, update models.DoctorProfileUpdate) (*models.Doctor, error) {
	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.Specialization != "" {
		set["specialization"] = update.Specialization
	}
	if update.Location != "" {
		set["location"] = update.Location
	}
	if update.HospitalName != "" {
		set["hospitalName"] = update.HospitalName
	}
	if len(set) == 0 {
		return s.FindByDoctorID(ctx, doctorID)
	}

	var doctor models.Doctor
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *mongoDoctorStore) SetStatus(ctx context.Context, doctorID, status string) error {
	return s.setField(ctx, doctorID, "status", status)
}

func (s *mongoDoctorStore) SetProfilePicture(ctx context.Context, doctorID, url string) error {
	return s.setField(ctx, doctorID, "profilePicture", url)
}

func (s *mongoDoctorStore) setField(ctx context.Context, doctorID, field, value string) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoDoctorStore) ListByStatus(ctx context.Context, status string) ([]models.Doctor, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *mongoDoctorStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, status := range []string{models.DoctorStatusPending, models.DoctorStatusApproved, models.DoctorStatusRejected} {
		n, err := s.coll.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}
