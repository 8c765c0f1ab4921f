package domain

import "time"

type Medicine struct {
	Name      string `json:"name" dynamodbav:"name" validate:"required"`
	Dosage    string `json:"dosage" dynamodbav:"dosage"`
	Frequency string `json:"frequency" dynamodbav:"frequency"`
	Duration  string `json:"duration" dynamodbav:"duration"`
}

type Prescription struct {
	PrescriptionID string     `json:"id" dynamodbav:"prescription_id"`
	AppointmentID  string     `json:"appointment_id" dynamodbav:"appointment_id"`
	DoctorID       string     `json:"doctor_id" dynamodbav:"doctor_id"`
	DoctorName     string     `json:"doctor_name" dynamodbav:"doctor_name"`
	PatientID      string     `json:"patient_id" dynamodbav:"patient_id"`
	Medicines      []Medicine `json:"medicines" dynamodbav:"medicines"`
	Advice         string     `json:"advice,omitempty" dynamodbav:"advice"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreatePrescriptionRequest struct {
	AppointmentID string     `json:"appointment_id" validate:"required"`
	Medicines     []Medicine `json:"medicines" validate:"required,min=1,dive"`
	Advice        string     `json:"advice"`
}
