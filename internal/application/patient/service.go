package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/otp"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/id"
	pkgphone "github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/phone"
	"golang.org/x/crypto/bcrypt"
)

// genericLoginFailure is returned for both unknown identifier and wrong
// password so the response does not leak which accounts exist.
const genericLoginFailure = "invalid credentials"

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // phone or email
	Password   string `json:"password" validate:"required"`
}

type Service interface {
	// Register verifies the supplied OTP against the patient's phone number
	// and creates the account phone-confirmed.
	Register(ctx context.Context, req domain.RegisterPatientRequest) (*domain.Patient, error)
	// Login verifies credentials and mints a bearer token for the patient.
	Login(ctx context.Context, req LoginRequest) (token string, p *domain.Patient, err error)
	Get(ctx context.Context, patientID string) (*domain.Patient, error)
	Update(ctx context.Context, patientID string, req domain.UpdatePatientRequest) (*domain.Patient, error)
}

type patientStore interface {
	Put(ctx context.Context, p *domain.Patient) error
	Get(ctx context.Context, patientID string) (*domain.Patient, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Patient, error)
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
	Update(ctx context.Context, patientID string, updates map[string]interface{}) error
}

type tokenSigner interface {
	Sign(subjectID, role string) (string, error)
}

type service struct {
	repo   patientStore
	otpSvc otp.Service
	signer tokenSigner
}

type ServiceDeps struct {
	PatientRepo patientStore
	OTPService  otp.Service
	JWTProvider tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:   deps.PatientRepo,
		otpSvc: deps.OTPService,
		signer: deps.JWTProvider,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterPatientRequest) (*domain.Patient, error) {
	normalized, err := pkgphone.Normalize(req.Phone)
	if err != nil {
		return nil, err
	}
	if err := otp.VerifyOrError(ctx, s.otpSvc, normalized, req.OTP); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByPhone(ctx, normalized); err == nil {
		return nil, fmt.Errorf("phone already registered: %w", domain.ErrConflict)
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var birthday time.Time
	if req.Birthday != "" {
		birthday, err = time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("birthday must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
	}
	now := time.Now().UTC()
	p := &domain.Patient{
		PatientID:      id.New(),
		Name:           req.Name,
		Phone:          normalized,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Birthday:       birthday,
		PhoneConfirmed: true,
		Enable:         1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, *domain.Patient, error) {
	p, err := s.lookup(ctx, req.Identifier)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", genericLoginFailure, domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("%s: %w", genericLoginFailure, domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(p.PatientID, domain.RolePatient)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

func (s *service) Get(ctx context.Context, patientID string) (*domain.Patient, error) {
	return s.repo.Get(ctx, patientID)
}

func (s *service) Update(ctx context.Context, patientID string, req domain.UpdatePatientRequest) (*domain.Patient, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("birthday must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		updates["birthday"] = birthday.Format(time.RFC3339)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, patientID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, patientID)
}

func (s *service) lookup(ctx context.Context, identifier string) (*domain.Patient, error) {
	if strings.Contains(identifier, "@") {
		return s.repo.GetByEmail(ctx, identifier)
	}
	normalized, err := pkgphone.Normalize(identifier)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByPhone(ctx, normalized)
}
