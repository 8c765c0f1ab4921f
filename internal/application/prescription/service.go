package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/id"
)

type Service interface {
	// Create writes a prescription against a completed or booked appointment
	// owned by the doctor.
	Create(ctx context.Context, doctorID string, req domain.CreatePrescriptionRequest) (*domain.Prescription, error)
	Get(ctx context.Context, requesterID, prescriptionID string) (*domain.Prescription, error)
	ListForPatient(ctx context.Context, patientID string) ([]domain.Prescription, error)
	ListForAppointment(ctx context.Context, requesterID, appointmentID string) ([]domain.Prescription, error)
}

type prescriptionStore interface {
	Put(ctx context.Context, p *domain.Prescription) error
	Get(ctx context.Context, prescriptionID string) (*domain.Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error)
	ListByAppointment(ctx context.Context, appointmentID string) ([]domain.Prescription, error)
}

type appointmentStore interface {
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
}

type service struct {
	repo     prescriptionStore
	apptRepo appointmentStore
}

type ServiceDeps struct {
	PrescriptionRepo prescriptionStore
	AppointmentRepo  appointmentStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.PrescriptionRepo, apptRepo: deps.AppointmentRepo}
}

func (s *service) Create(ctx context.Context, doctorID string, req domain.CreatePrescriptionRequest) (*domain.Prescription, error) {
	a, err := s.apptRepo.Get(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if a.DoctorID != doctorID {
		return nil, fmt.Errorf("appointment belongs to another doctor: %w", domain.ErrForbidden)
	}
	if a.Status == domain.AppointmentCancelled {
		return nil, fmt.Errorf("appointment is cancelled: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	p := &domain.Prescription{
		PrescriptionID: id.New(),
		AppointmentID:  a.AppointmentID,
		DoctorID:       a.DoctorID,
		DoctorName:     a.DoctorName,
		PatientID:      a.PatientID,
		Medicines:      req.Medicines,
		Advice:         req.Advice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, requesterID, prescriptionID string) (*domain.Prescription, error) {
	p, err := s.repo.Get(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if p.PatientID != requesterID && p.DoctorID != requesterID {
		return nil, fmt.Errorf("prescription belongs to another patient: %w", domain.ErrForbidden)
	}
	return p, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *service) ListForAppointment(ctx context.Context, requesterID, appointmentID string) ([]domain.Prescription, error) {
	a, err := s.apptRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.PatientID != requesterID && a.DoctorID != requesterID {
		return nil, fmt.Errorf("appointment belongs to another patient: %w", domain.ErrForbidden)
	}
	return s.repo.ListByAppointment(ctx, appointmentID)
}
