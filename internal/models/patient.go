package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patient records are created by the permissive verify flow: the patient
// self-attests with name and aadhar/phone, there is no password.
type Patient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Aadhar    string             `bson:"aadhar" json:"aadhar"`
	Phone     string             `bson:"phone" json:"phone"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
