package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/id"
)

type Service interface {
	// Book creates an appointment for the patient if the doctor slot is free.
	Book(ctx context.Context, patientID string, req domain.BookAppointmentRequest) (*domain.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID, date string) ([]domain.Appointment, error)
	// Cancel releases a booked slot. Only the owning patient may cancel.
	Cancel(ctx context.Context, patientID, appointmentID string) (*domain.Appointment, error)
	// Complete marks a booked appointment completed. Only the doctor it
	// belongs to may complete it.
	Complete(ctx context.Context, doctorID, appointmentID string) (*domain.Appointment, error)
}

type appointmentStore interface {
	Put(ctx context.Context, a *domain.Appointment) error
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID, date string) ([]domain.Appointment, error)
	FindBooked(ctx context.Context, doctorID, date, slot string) (*domain.Appointment, error)
	Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error
}

type doctorStore interface {
	Get(ctx context.Context, doctorID string) (*domain.Doctor, error)
}

type patientStore interface {
	Get(ctx context.Context, patientID string) (*domain.Patient, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	repo        appointmentStore
	doctorRepo  doctorStore
	patientRepo patientStore
	notifRepo   notificationStore
	mailer      mailer
}

type ServiceDeps struct {
	AppointmentRepo  appointmentStore
	DoctorRepo       doctorStore
	PatientRepo      patientStore
	NotificationRepo notificationStore
	Mailer           mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.AppointmentRepo,
		doctorRepo:  deps.DoctorRepo,
		patientRepo: deps.PatientRepo,
		notifRepo:   deps.NotificationRepo,
		mailer:      deps.Mailer,
	}
}

func (s *service) Book(ctx context.Context, patientID string, req domain.BookAppointmentRequest) (*domain.Appointment, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, fmt.Errorf("date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	if _, err := time.Parse("15:04", req.Slot); err != nil {
		return nil, fmt.Errorf("slot must be in HH:MM format: %w", domain.ErrBadRequest)
	}
	d, err := s.doctorRepo.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	p, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindBooked(ctx, d.DoctorID, req.Date, req.Slot); err == nil {
		return nil, fmt.Errorf("slot already booked: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	a := &domain.Appointment{
		AppointmentID: id.New(),
		PatientID:     p.PatientID,
		PatientName:   p.Name,
		DoctorID:      d.DoctorID,
		DoctorName:    d.Name,
		Specialty:     d.Specialty,
		Date:          req.Date,
		Slot:          req.Slot,
		Status:        domain.AppointmentBooked,
		PaymentStatus: domain.PaymentPending,
		Fees:          d.Fees,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}

	s.notify(ctx, p.PatientID, "Appointment booked",
		fmt.Sprintf("Your appointment with %s on %s at %s is confirmed.", d.Name, a.Date, a.Slot))
	s.notify(ctx, d.DoctorID, "New appointment",
		fmt.Sprintf("%s booked %s at %s.", p.Name, a.Date, a.Slot))
	if p.Email != "" {
		if err := s.mailer.SendEmail(p.Email, "Appointment confirmed",
			fmt.Sprintf("Your appointment with %s on %s at %s is confirmed.", d.Name, a.Date, a.Slot)); err != nil {
			slog.Warn("confirmation email failed", "appointment_id", a.AppointmentID, "err", err)
		}
	}
	return a, nil
}

func (s *service) ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *service) ListForDoctor(ctx context.Context, doctorID, date string) ([]domain.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID, date)
}

func (s *service) Cancel(ctx context.Context, patientID, appointmentID string) (*domain.Appointment, error) {
	a, err := s.repo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.PatientID != patientID {
		return nil, fmt.Errorf("appointment belongs to another patient: %w", domain.ErrForbidden)
	}
	if a.Status != domain.AppointmentBooked {
		return nil, fmt.Errorf("appointment is %s: %w", a.Status, domain.ErrConflict)
	}
	if err := s.repo.Update(ctx, appointmentID, map[string]interface{}{"status": domain.AppointmentCancelled}); err != nil {
		return nil, err
	}
	a.Status = domain.AppointmentCancelled
	s.notify(ctx, a.DoctorID, "Appointment cancelled",
		fmt.Sprintf("%s cancelled %s at %s.", a.PatientName, a.Date, a.Slot))
	return a, nil
}

func (s *service) Complete(ctx context.Context, doctorID, appointmentID string) (*domain.Appointment, error) {
	a, err := s.repo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.DoctorID != doctorID {
		return nil, fmt.Errorf("appointment belongs to another doctor: %w", domain.ErrForbidden)
	}
	if a.Status != domain.AppointmentBooked {
		return nil, fmt.Errorf("appointment is %s: %w", a.Status, domain.ErrConflict)
	}
	if err := s.repo.Update(ctx, appointmentID, map[string]interface{}{"status": domain.AppointmentCompleted}); err != nil {
		return nil, err
	}
	a.Status = domain.AppointmentCompleted
	return a, nil
}

// notify writes a notification, logging instead of failing the request.
func (s *service) notify(ctx context.Context, userID, title, body string) {
	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         userID,
		Title:          title,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifRepo.Put(ctx, n); err != nil {
		slog.Warn("notification write failed", "user_id", userID, "err", err)
	}
}
