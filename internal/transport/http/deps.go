package http

import (
	"context"
	"io"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
)

// PatientRepository is the minimal interface the router requires from a patient store.
type PatientRepository interface {
	Put(ctx context.Context, p *domain.Patient) error
	Get(ctx context.Context, patientID string) (*domain.Patient, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Patient, error)
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
	Update(ctx context.Context, patientID string, updates map[string]interface{}) error
}

// DoctorRepository is the minimal interface the router requires from a doctor store.
type DoctorRepository interface {
	Put(ctx context.Context, d *domain.Doctor) error
	Get(ctx context.Context, doctorID string) (*domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Doctor, error)
	List(ctx context.Context, specialty string) ([]domain.Doctor, error)
	Update(ctx context.Context, doctorID string, updates map[string]interface{}) error
}

// AppointmentRepository is the minimal interface the router requires from an appointment store.
type AppointmentRepository interface {
	Put(ctx context.Context, a *domain.Appointment) error
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID, date string) ([]domain.Appointment, error)
	// FindBooked returns the booked appointment occupying the doctor's slot,
	// or domain.ErrNotFound when the slot is free.
	FindBooked(ctx context.Context, doctorID, date, slot string) (*domain.Appointment, error)
	Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error
}

// PrescriptionRepository is the minimal interface the router requires from a prescription store.
type PrescriptionRepository interface {
	Put(ctx context.Context, p *domain.Prescription) error
	Get(ctx context.Context, prescriptionID string) (*domain.Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error)
	ListByAppointment(ctx context.Context, appointmentID string) ([]domain.Prescription, error)
}

// PaymentRepository is the minimal interface the router requires from a payment store.
type PaymentRepository interface {
	Put(ctx context.Context, p *domain.Payment) error
	Get(ctx context.Context, orderID string) (*domain.Payment, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
}

// NotificationRepository is the minimal interface the router requires from a notification store.
type NotificationRepository interface {
	Put(ctx context.Context, n *domain.Notification) error
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
}

// FileRepository is the minimal interface the router requires from a file store.
type FileRepository interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
