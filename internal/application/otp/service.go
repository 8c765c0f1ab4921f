package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/otpstore"
	pkgphone "github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/phone"
)

// Result is the three-way outcome of a verification attempt. Callers must be
// able to distinguish all three: NotFoundOrExpired requires re-issuance,
// Mismatch may be retried against the same still-valid code.
type Result int

const (
	Verified Result = iota
	Mismatch
	NotFoundOrExpired
)

func (r Result) String() string {
	switch r {
	case Verified:
		return "verified"
	case Mismatch:
		return "mismatch"
	case NotFoundOrExpired:
		return "not found or expired"
	default:
		return "unknown"
	}
}

type Service interface {
	// Issue generates a fresh code for the phone number, stores it (replacing
	// any pending code) and dispatches it by SMS. Returns the provider
	// message id.
	Issue(ctx context.Context, phone string) (messageID string, err error)
	// Verify checks a candidate code. On exact match the stored code is
	// invalidated before Verified is returned.
	Verify(ctx context.Context, phone, candidate string) (Result, error)
}

type smsSender interface {
	Send(ctx context.Context, to, message string) (string, error)
}

type service struct {
	store         otpstore.Store
	sender        smsSender
	countryPrefix string
	now           func() time.Time
}

type ServiceDeps struct {
	Store         otpstore.Store
	Sender        smsSender
	CountryPrefix string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:         deps.Store,
		sender:        deps.Sender,
		countryPrefix: deps.CountryPrefix,
		now:           time.Now,
	}
}

func (s *service) Issue(ctx context.Context, phone string) (string, error) {
	identifier, err := pkgphone.Normalize(phone)
	if err != nil {
		return "", err
	}
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	// Store before dispatch: a failed dispatch leaves the code valid so a
	// retried dispatch of the same code can still succeed downstream.
	if err := s.store.Set(ctx, identifier, otpstore.Entry{Code: code, IssuedAt: s.now()}); err != nil {
		return "", err
	}
	messageID, err := s.sender.Send(ctx, s.countryPrefix+identifier, "Your verification code is "+code)
	if err != nil {
		slog.Error("OTP dispatch failed", "identifier", identifier, "err", err)
		return "", fmt.Errorf("could not send verification SMS: %w", err)
	}
	return messageID, nil
}

func (s *service) Verify(ctx context.Context, phone, candidate string) (Result, error) {
	identifier, err := pkgphone.Normalize(phone)
	if err != nil {
		return NotFoundOrExpired, err
	}
	entry, ok, err := s.store.Get(ctx, identifier)
	if err != nil {
		return NotFoundOrExpired, err
	}
	if !ok {
		return NotFoundOrExpired, nil
	}
	// Exact string equality, no normalization of the candidate.
	if candidate != entry.Code {
		return Mismatch, nil
	}
	// The code must be invalidated before Verified is reported; otherwise a
	// replay inside the validity window could succeed twice.
	if _, err := s.store.Delete(ctx, identifier); err != nil {
		return NotFoundOrExpired, fmt.Errorf("invalidate verified code: %w", err)
	}
	return Verified, nil
}

// generateCode returns a uniformly random 6-digit decimal code in
// [100000, 999999]. crypto/rand.Int is uniform over [0, 900000), so no value
// below six digits and no modulo bias.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// VerifyOrError maps a non-Verified result onto a domain error so callers
// that only need pass/fail (e.g. registration) can use the error path.
func VerifyOrError(ctx context.Context, svc Service, phone, candidate string) error {
	res, err := svc.Verify(ctx, phone, candidate)
	if err != nil {
		return err
	}
	switch res {
	case Verified:
		return nil
	case Mismatch:
		return fmt.Errorf("incorrect verification code: %w", domain.ErrBadRequest)
	default:
		return fmt.Errorf("verification code not found or expired: %w", domain.ErrBadRequest)
	}
}
