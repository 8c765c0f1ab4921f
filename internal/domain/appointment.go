package domain

import "time"

// Appointment statuses.
const (
	AppointmentBooked    = "booked"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Payment statuses on an appointment.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

type Appointment struct {
	AppointmentID string    `json:"id" dynamodbav:"appointment_id"`
	PatientID     string    `json:"patient_id" dynamodbav:"patient_id"`
	PatientName   string    `json:"patient_name" dynamodbav:"patient_name"`
	DoctorID      string    `json:"doctor_id" dynamodbav:"doctor_id"`
	DoctorName    string    `json:"doctor_name" dynamodbav:"doctor_name"`
	Specialty     string    `json:"specialty" dynamodbav:"specialty"`
	Date          string    `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Slot          string    `json:"slot" dynamodbav:"slot"` // HH:MM
	Status        string    `json:"status" dynamodbav:"status"`
	PaymentStatus string    `json:"payment_status" dynamodbav:"payment_status"`
	Fees          int       `json:"fees" dynamodbav:"fees"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required"` // YYYY-MM-DD
	Slot     string `json:"slot" validate:"required"` // HH:MM
}
