package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/id"
	pkgphone "github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/phone"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/slug"
	"golang.org/x/crypto/bcrypt"
)

const genericLoginFailure = "invalid credentials"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterDoctorRequest) (*domain.Doctor, error)
	Login(ctx context.Context, req LoginRequest) (token string, d *domain.Doctor, err error)
	Get(ctx context.Context, doctorID string) (*domain.Doctor, error)
	GetBySlug(ctx context.Context, s string) (*domain.Doctor, error)
	List(ctx context.Context, specialty string) ([]domain.Doctor, error)
	Update(ctx context.Context, doctorID string, req domain.UpdateDoctorRequest) (*domain.Doctor, error)
	SetPhotoURL(ctx context.Context, doctorID, url string) error
	// BackfillSlugs fills the slug attribute on doctors created before slugs
	// existed. Returns the number of records updated.
	BackfillSlugs(ctx context.Context) (int, error)
}

type doctorStore interface {
	Put(ctx context.Context, d *domain.Doctor) error
	Get(ctx context.Context, doctorID string) (*domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	GetBySlug(ctx context.Context, s string) (*domain.Doctor, error)
	List(ctx context.Context, specialty string) ([]domain.Doctor, error)
	Update(ctx context.Context, doctorID string, updates map[string]interface{}) error
}

type tokenSigner interface {
	Sign(subjectID, role string) (string, error)
}

type service struct {
	repo   doctorStore
	signer tokenSigner
}

type ServiceDeps struct {
	DoctorRepo  doctorStore
	JWTProvider tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.DoctorRepo, signer: deps.JWTProvider}
}

func (s *service) Register(ctx context.Context, req domain.RegisterDoctorRequest) (*domain.Doctor, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var normalized string
	if req.Phone != "" {
		normalized, err = pkgphone.Normalize(req.Phone)
		if err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	d := &domain.Doctor{
		DoctorID:        id.New(),
		Name:            req.Name,
		Slug:            s.uniqueSlug(ctx, req.Name),
		Email:           req.Email,
		Phone:           normalized,
		PasswordHash:    string(hash),
		Specialty:       req.Specialty,
		Degree:          req.Degree,
		ExperienceYears: req.ExperienceYears,
		Fees:            req.Fees,
		About:           req.About,
		Address:         req.Address,
		TimingStart:     req.TimingStart,
		TimingEnd:       req.TimingEnd,
		Enable:          1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, *domain.Doctor, error) {
	d, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", genericLoginFailure, domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("%s: %w", genericLoginFailure, domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(d.DoctorID, domain.RoleDoctor)
	if err != nil {
		return "", nil, err
	}
	return token, d, nil
}

func (s *service) Get(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	return s.repo.Get(ctx, doctorID)
}

func (s *service) GetBySlug(ctx context.Context, sl string) (*domain.Doctor, error) {
	return s.repo.GetBySlug(ctx, sl)
}

func (s *service) List(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	return s.repo.List(ctx, specialty)
}

func (s *service) Update(ctx context.Context, doctorID string, req domain.UpdateDoctorRequest) (*domain.Doctor, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = s.uniqueSlug(ctx, *req.Name)
	}
	if req.Phone != nil {
		normalized, err := pkgphone.Normalize(*req.Phone)
		if err != nil {
			return nil, err
		}
		updates["phone"] = normalized
	}
	if req.Specialty != nil {
		updates["specialty"] = *req.Specialty
	}
	if req.Degree != nil {
		updates["degree"] = *req.Degree
	}
	if req.ExperienceYears != nil {
		updates["experience_years"] = *req.ExperienceYears
	}
	if req.Fees != nil {
		updates["fees"] = *req.Fees
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.TimingStart != nil {
		updates["timing_start"] = *req.TimingStart
	}
	if req.TimingEnd != nil {
		updates["timing_end"] = *req.TimingEnd
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, doctorID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, doctorID)
}

func (s *service) SetPhotoURL(ctx context.Context, doctorID, url string) error {
	return s.repo.Update(ctx, doctorID, map[string]interface{}{"photo_url": url})
}

func (s *service) BackfillSlugs(ctx context.Context) (int, error) {
	doctors, err := s.repo.List(ctx, "")
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, d := range doctors {
		if d.Slug != "" {
			continue
		}
		sl := s.uniqueSlug(ctx, d.Name)
		if err := s.repo.Update(ctx, d.DoctorID, map[string]interface{}{"slug": sl}); err != nil {
			slog.Warn("slug backfill failed for doctor", "doctor_id", d.DoctorID, "err", err)
			continue
		}
		updated++
	}
	return updated, nil
}

// uniqueSlug appends a short id suffix when the natural slug is taken.
func (s *service) uniqueSlug(ctx context.Context, name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "doctor"
	}
	if _, err := s.repo.GetBySlug(ctx, base); err != nil {
		return base
	}
	suffix := id.New()
	return base + "-" + suffix[len(suffix)-6:]
}
