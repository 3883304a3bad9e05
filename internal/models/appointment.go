package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment states. Booking creates a pending appointment; the owning
// doctor confirms it. No other transitions exist.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
)

type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID     string             `bson:"doctorId" json:"doctorId"` // doctor's public code
	PatientName  string             `bson:"patientName" json:"patientName"`
	PatientEmail string             `bson:"patientEmail" json:"patientEmail"`
	PatientPhone string             `bson:"patientPhone" json:"patientPhone"`
	Date         string             `bson:"appointmentDate" json:"appointmentDate"`
	TimeSlot     string             `bson:"timeSlot" json:"timeSlot"`
	Status       string             `bson:"status" json:"status"`
	Message      string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
