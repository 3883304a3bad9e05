package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor approval states. A doctor registers as pending and can only
// log in once an admin has moved them to approved.
const (
	DoctorStatusPending  = "pending"
	DoctorStatusApproved = "approved"
	DoctorStatusRejected = "rejected"
)

type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID       string             `bson:"doctorId" json:"doctorId"` // public short code, unique
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"` // unique
	PasswordHash   string             `bson:"passwordHash" json:"-"`
	Phone          string             `bson:"phone" json:"phone"`
	Gender         string             `bson:"gender" json:"gender"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Location       string             `bson:"location" json:"location"`
	HospitalName   string             `bson:"hospitalName" json:"hospitalName"`
	Status         string             `bson:"status" json:"status"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// DoctorProfileUpdate is the fixed set of self-service mutable fields.
// Email, password, status and the doctor code are never updated through it.
type DoctorProfileUpdate struct {
	Name           string `bson:"name,omitempty" json:"name"`
	Phone          string `bson:"phone,omitempty" json:"phone"`
	Specialization string `bson:"specialization,omitempty" json:"specialization"`
	Location       string `bson:"location,omitempty" json:"location"`
	HospitalName   string `bson:"hospitalName,omitempty" json:"hospitalName"`
}
