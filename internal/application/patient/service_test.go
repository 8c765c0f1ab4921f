package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/otp"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
)

// --- mocks ---

type mockPatientStore struct{ mock.Mock }

func (m *mockPatientStore) Put(ctx context.Context, p *domain.Patient) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockPatientStore) Get(ctx context.Context, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, patientID)
	if p, _ := args.Get(0).(*domain.Patient); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPatientStore) GetByPhone(ctx context.Context, phone string) (*domain.Patient, error) {
	args := m.Called(ctx, phone)
	if p, _ := args.Get(0).(*domain.Patient); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPatientStore) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	args := m.Called(ctx, email)
	if p, _ := args.Get(0).(*domain.Patient); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPatientStore) Update(ctx context.Context, patientID string, updates map[string]interface{}) error {
	return m.Called(ctx, patientID, updates).Error(0)
}

type mockOTPService struct{ mock.Mock }

func (m *mockOTPService) Issue(ctx context.Context, phone string) (string, error) {
	args := m.Called(ctx, phone)
	return args.String(0), args.Error(1)
}
func (m *mockOTPService) Verify(ctx context.Context, phone, candidate string) (otp.Result, error) {
	args := m.Called(ctx, phone, candidate)
	return args.Get(0).(otp.Result), args.Error(1)
}

type mockJWTSigner struct{ mock.Mock }

func (m *mockJWTSigner) Sign(subjectID, role string) (string, error) {
	args := m.Called(subjectID, role)
	return args.String(0), args.Error(1)
}

// --- helpers ---

func newTestService(repo *mockPatientStore, otpSvc *mockOTPService, signer *mockJWTSigner) Service {
	return NewService(ServiceDeps{
		PatientRepo: repo,
		OTPService:  otpSvc,
		JWTProvider: signer,
	})
}

func baseReq() domain.RegisterPatientRequest {
	return domain.RegisterPatientRequest{
		Name:     "Asha",
		Phone:    "+91 98765 43210",
		OTP:      "123456",
		Email:    "asha@example.com",
		Password: "password123",
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- Register tests ---

func TestRegister_HappyPath(t *testing.T) {
	repo := &mockPatientStore{}
	otpSvc := &mockOTPService{}
	otpSvc.On("Verify", mock.Anything, "9876543210", "123456").Return(otp.Verified, nil)
	repo.On("GetByPhone", mock.Anything, "9876543210").Return(nil, domain.ErrNotFound)
	repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(repo, otpSvc, nil)
	p, err := svc.Register(context.Background(), baseReq())

	require.NoError(t, err)
	assert.Equal(t, "9876543210", p.Phone)
	assert.True(t, p.PhoneConfirmed)
	assert.NotEmpty(t, p.PatientID)
	assert.NotEqual(t, "password123", p.PasswordHash)
	otpSvc.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestRegister_OTPMismatch(t *testing.T) {
	repo := &mockPatientStore{}
	otpSvc := &mockOTPService{}
	otpSvc.On("Verify", mock.Anything, "9876543210", "123456").Return(otp.Mismatch, nil)

	svc := newTestService(repo, otpSvc, nil)
	_, err := svc.Register(context.Background(), baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_OTPExpired(t *testing.T) {
	repo := &mockPatientStore{}
	otpSvc := &mockOTPService{}
	otpSvc.On("Verify", mock.Anything, "9876543210", "123456").Return(otp.NotFoundOrExpired, nil)

	svc := newTestService(repo, otpSvc, nil)
	_, err := svc.Register(context.Background(), baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRegister_PhoneConflict(t *testing.T) {
	repo := &mockPatientStore{}
	otpSvc := &mockOTPService{}
	otpSvc.On("Verify", mock.Anything, "9876543210", "123456").Return(otp.Verified, nil)
	repo.On("GetByPhone", mock.Anything, "9876543210").Return(&domain.Patient{}, nil)

	svc := newTestService(repo, otpSvc, nil)
	_, err := svc.Register(context.Background(), baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRegister_EmailConflict(t *testing.T) {
	repo := &mockPatientStore{}
	otpSvc := &mockOTPService{}
	otpSvc.On("Verify", mock.Anything, "9876543210", "123456").Return(otp.Verified, nil)
	repo.On("GetByPhone", mock.Anything, "9876543210").Return(nil, domain.ErrNotFound)
	repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(&domain.Patient{}, nil)

	svc := newTestService(repo, otpSvc, nil)
	_, err := svc.Register(context.Background(), baseReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRegister_BadBirthday(t *testing.T) {
	repo := &mockPatientStore{}
	otpSvc := &mockOTPService{}
	otpSvc.On("Verify", mock.Anything, "9876543210", "123456").Return(otp.Verified, nil)
	repo.On("GetByPhone", mock.Anything, "9876543210").Return(nil, domain.ErrNotFound)
	repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(nil, domain.ErrNotFound)

	req := baseReq()
	req.Birthday = "31-12-1990"
	svc := newTestService(repo, otpSvc, nil)
	_, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Login tests ---

func TestLogin_UnknownIdentifier(t *testing.T) {
	repo := &mockPatientStore{}
	repo.On("GetByPhone", mock.Anything, "9876543210").Return(nil, domain.ErrNotFound)

	svc := newTestService(repo, nil, nil)
	_, _, err := svc.Login(context.Background(), LoginRequest{Identifier: "9876543210", Password: "whatever"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, "invalid credentials: unauthorized", err.Error())
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockPatientStore{}
	repo.On("GetByPhone", mock.Anything, "9876543210").Return(&domain.Patient{
		PatientID:    "p1",
		PasswordHash: hashOf(t, "correct-password"),
	}, nil)

	svc := newTestService(repo, nil, nil)
	_, _, err := svc.Login(context.Background(), LoginRequest{Identifier: "9876543210", Password: "wrong-password"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, "invalid credentials: unauthorized", err.Error())
}

// Unknown account and wrong password must produce byte-identical failures.
func TestLogin_FailureMessagesIndistinguishable(t *testing.T) {
	unknownRepo := &mockPatientStore{}
	unknownRepo.On("GetByPhone", mock.Anything, "9876543210").Return(nil, domain.ErrNotFound)
	_, _, errUnknown := newTestService(unknownRepo, nil, nil).
		Login(context.Background(), LoginRequest{Identifier: "9876543210", Password: "x"})

	wrongRepo := &mockPatientStore{}
	wrongRepo.On("GetByPhone", mock.Anything, "9876543210").Return(&domain.Patient{
		PasswordHash: hashOf(t, "right"),
	}, nil)
	_, _, errWrong := newTestService(wrongRepo, nil, nil).
		Login(context.Background(), LoginRequest{Identifier: "9876543210", Password: "x"})

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_ByPhone_HappyPath(t *testing.T) {
	repo := &mockPatientStore{}
	signer := &mockJWTSigner{}
	repo.On("GetByPhone", mock.Anything, "9876543210").Return(&domain.Patient{
		PatientID:    "p1",
		PasswordHash: hashOf(t, "password123"),
	}, nil)
	signer.On("Sign", "p1", domain.RolePatient).Return("signed-token", nil)

	svc := newTestService(repo, nil, signer)
	token, p, err := svc.Login(context.Background(), LoginRequest{Identifier: "+919876543210", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, "p1", p.PatientID)
	signer.AssertExpectations(t)
}

func TestLogin_ByEmail_HappyPath(t *testing.T) {
	repo := &mockPatientStore{}
	signer := &mockJWTSigner{}
	repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(&domain.Patient{
		PatientID:    "p1",
		PasswordHash: hashOf(t, "password123"),
	}, nil)
	signer.On("Sign", "p1", domain.RolePatient).Return("signed-token", nil)

	svc := newTestService(repo, nil, signer)
	token, _, err := svc.Login(context.Background(), LoginRequest{Identifier: "asha@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

// --- Update tests ---

func TestUpdate_NoFields(t *testing.T) {
	svc := newTestService(&mockPatientStore{}, nil, nil)
	_, err := svc.Update(context.Background(), "p1", domain.UpdatePatientRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdate_HappyPath(t *testing.T) {
	repo := &mockPatientStore{}
	name := "Asha K"
	repo.On("Update", mock.Anything, "p1", map[string]interface{}{"name": name}).Return(nil)
	repo.On("Get", mock.Anything, "p1").Return(&domain.Patient{PatientID: "p1", Name: name}, nil)

	svc := newTestService(repo, nil, nil)
	p, err := svc.Update(context.Background(), "p1", domain.UpdatePatientRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, name, p.Name)
	repo.AssertExpectations(t)
}
