package domain

import "time"

// Payment order statuses.
const (
	OrderCreated  = "created"
	OrderVerified = "verified"
	OrderFailed   = "failed"
)

// Payment is one gateway order for an appointment.
// PK: order_id (gateway order identifier).
type Payment struct {
	OrderID       string    `json:"order_id" dynamodbav:"order_id"`
	AppointmentID string    `json:"appointment_id" dynamodbav:"appointment_id"`
	PatientID     string    `json:"patient_id" dynamodbav:"patient_id"`
	PaymentID     string    `json:"payment_id,omitempty" dynamodbav:"payment_id"`
	Amount        int       `json:"amount" dynamodbav:"amount"`
	Status        string    `json:"status" dynamodbav:"status"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
