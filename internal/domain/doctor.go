package domain

import "time"

// Role flags carried in the JWT.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

type Doctor struct {
	DoctorID        string     `json:"id" dynamodbav:"doctor_id"`
	Name            string     `json:"name" dynamodbav:"name"`
	Slug            string     `json:"slug" dynamodbav:"slug"`
	Email           string     `json:"email" dynamodbav:"email"`
	Phone           string     `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash    string     `json:"-" dynamodbav:"password_hash"`
	Specialty       string     `json:"specialty" dynamodbav:"specialty"`
	Degree          string     `json:"degree,omitempty" dynamodbav:"degree"`
	ExperienceYears int        `json:"experience_years" dynamodbav:"experience_years"`
	Fees            int        `json:"fees" dynamodbav:"fees"` // consultation fee, smallest currency unit
	About           string     `json:"about,omitempty" dynamodbav:"about"`
	Address         string     `json:"address,omitempty" dynamodbav:"address"`
	TimingStart     string     `json:"timing_start" dynamodbav:"timing_start"` // HH:MM
	TimingEnd       string     `json:"timing_end" dynamodbav:"timing_end"`     // HH:MM
	PhotoURL        string     `json:"photo_url,omitempty" dynamodbav:"photo_url"`
	Enable          int        `json:"enable" dynamodbav:"enable"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt       time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterDoctorRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	Specialty       string `json:"specialty" validate:"required"`
	Degree          string `json:"degree"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0"`
	Fees            int    `json:"fees" validate:"gte=0"`
	About           string `json:"about"`
	Address         string `json:"address"`
	TimingStart     string `json:"timing_start"`
	TimingEnd       string `json:"timing_end"`
}

type UpdateDoctorRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Specialty       *string `json:"specialty"`
	Degree          *string `json:"degree"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0"`
	Fees            *int    `json:"fees" validate:"omitempty,gte=0"`
	About           *string `json:"about"`
	Address         *string `json:"address"`
	TimingStart     *string `json:"timing_start"`
	TimingEnd       *string `json:"timing_end"`
}
