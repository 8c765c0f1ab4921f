package domain

import "time"

type Patient struct {
	PatientID      string     `json:"id" dynamodbav:"patient_id"`
	Name           string     `json:"name" dynamodbav:"name"`
	Phone          string     `json:"phone" dynamodbav:"phone"` // normalized, national digits only
	Email          string     `json:"email" dynamodbav:"email"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	Gender         string     `json:"gender,omitempty" dynamodbav:"gender"`
	Birthday       time.Time  `json:"birthday" dynamodbav:"birthday"`
	Address        string     `json:"address,omitempty" dynamodbav:"address"`
	PhoneConfirmed bool       `json:"phone_confirmed" dynamodbav:"phone_confirmed"`
	Enable         int        `json:"enable" dynamodbav:"enable"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterPatientRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Birthday string `json:"birthday"` // expected format: YYYY-MM-DD
}

type UpdatePatientRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Gender   *string `json:"gender"`
	Birthday *string `json:"birthday"` // expected format: YYYY-MM-DD
	Address  *string `json:"address"`
}
