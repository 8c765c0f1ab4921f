package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/id"
)

type Service interface {
	// CreateOrder opens a gateway order for an unpaid appointment.
	CreateOrder(ctx context.Context, patientID, appointmentID string) (*domain.Payment, error)
	// Verify checks the gateway signature over the order and marks the
	// appointment paid on success.
	Verify(ctx context.Context, patientID string, req domain.VerifyPaymentRequest) (*domain.Payment, error)
}

type paymentStore interface {
	Put(ctx context.Context, p *domain.Payment) error
	Get(ctx context.Context, orderID string) (*domain.Payment, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
}

type appointmentStore interface {
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error
}

type service struct {
	repo     paymentStore
	apptRepo appointmentStore
	secret   []byte
}

type ServiceDeps struct {
	PaymentRepo     paymentStore
	AppointmentRepo appointmentStore
	GatewaySecret   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:     deps.PaymentRepo,
		apptRepo: deps.AppointmentRepo,
		secret:   []byte(deps.GatewaySecret),
	}
}

func (s *service) CreateOrder(ctx context.Context, patientID, appointmentID string) (*domain.Payment, error) {
	a, err := s.apptRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.PatientID != patientID {
		return nil, fmt.Errorf("appointment belongs to another patient: %w", domain.ErrForbidden)
	}
	if a.PaymentStatus == domain.PaymentPaid {
		return nil, fmt.Errorf("appointment already paid: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	p := &domain.Payment{
		OrderID:       "order_" + id.New(),
		AppointmentID: a.AppointmentID,
		PatientID:     a.PatientID,
		Amount:        a.Fees,
		Status:        domain.OrderCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Verify(ctx context.Context, patientID string, req domain.VerifyPaymentRequest) (*domain.Payment, error) {
	p, err := s.repo.Get(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if p.PatientID != patientID {
		return nil, fmt.Errorf("order belongs to another patient: %w", domain.ErrForbidden)
	}
	if p.Status == domain.OrderVerified {
		return nil, fmt.Errorf("order already verified: %w", domain.ErrConflict)
	}
	if !s.signatureValid(req.OrderID, req.PaymentID, req.Signature) {
		if uerr := s.repo.Update(ctx, p.OrderID, map[string]interface{}{"status": domain.OrderFailed}); uerr != nil {
			return nil, uerr
		}
		return nil, fmt.Errorf("payment signature mismatch: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, p.OrderID, map[string]interface{}{
		"status":     domain.OrderVerified,
		"payment_id": req.PaymentID,
	}); err != nil {
		return nil, err
	}
	if err := s.apptRepo.Update(ctx, p.AppointmentID, map[string]interface{}{"payment_status": domain.PaymentPaid}); err != nil {
		return nil, err
	}
	p.Status = domain.OrderVerified
	p.PaymentID = req.PaymentID
	return p, nil
}

// signatureValid recomputes the gateway HMAC over "orderID|paymentID" and
// compares in constant time.
func (s *service) signatureValid(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
