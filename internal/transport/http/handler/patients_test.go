package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/patient"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/transport/http/middleware"
)

type mockPatientSvc struct{ mock.Mock }

func (m *mockPatientSvc) Register(ctx context.Context, req domain.RegisterPatientRequest) (*domain.Patient, error) {
	args := m.Called(ctx, req)
	if p, _ := args.Get(0).(*domain.Patient); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientSvc) Login(ctx context.Context, req patient.LoginRequest) (string, *domain.Patient, error) {
	args := m.Called(ctx, req)
	if p, _ := args.Get(1).(*domain.Patient); p != nil {
		return args.String(0), p, args.Error(2)
	}
	return "", nil, args.Error(2)
}

func (m *mockPatientSvc) Get(ctx context.Context, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, patientID)
	if p, _ := args.Get(0).(*domain.Patient); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientSvc) Update(ctx context.Context, patientID string, req domain.UpdatePatientRequest) (*domain.Patient, error) {
	args := m.Called(ctx, patientID, req)
	if p, _ := args.Get(0).(*domain.Patient); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

var testCookies = CookieSettings{MaxAge: 86400, Secure: false}

func authCookie(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestPatientLogin_SetsSessionCookie(t *testing.T) {
	svc := &mockPatientSvc{}
	p := &domain.Patient{PatientID: "p1", Name: "Asha", Phone: "9876543210"}
	svc.On("Login", mock.Anything, mock.Anything).Return("signed-token", p, nil)
	h := NewPatientHandler(svc, testCookies)

	body, _ := json.Marshal(patient.LoginRequest{Identifier: "9876543210", Password: "secret123"})
	r := httptest.NewRequest(http.MethodPost, "/v1/patients/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	require.Equal(t, http.StatusOK, rr.Code)
	c := authCookie(t, rr, middleware.PatientCookie)
	require.NotNil(t, c)
	assert.Equal(t, "signed-token", c.Value)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)

	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "signed-token", resp.Bearer)
	svc.AssertExpectations(t)
}

func TestPatientLogin_SecureCookieInProduction(t *testing.T) {
	svc := &mockPatientSvc{}
	p := &domain.Patient{PatientID: "p1"}
	svc.On("Login", mock.Anything, mock.Anything).Return("signed-token", p, nil)
	h := NewPatientHandler(svc, CookieSettings{MaxAge: 86400, Secure: true})

	body, _ := json.Marshal(patient.LoginRequest{Identifier: "9876543210", Password: "secret123"})
	r := httptest.NewRequest(http.MethodPost, "/v1/patients/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	c := authCookie(t, rr, middleware.PatientCookie)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
}

func TestPatientLogin_FailureLeavesNoCookie(t *testing.T) {
	unknown := fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	wrongPassword := fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)

	// unknown identifier and wrong password must be indistinguishable
	for _, svcErr := range []error{unknown, wrongPassword} {
		svc := &mockPatientSvc{}
		svc.On("Login", mock.Anything, mock.Anything).Return("", nil, svcErr)
		h := NewPatientHandler(svc, testCookies)

		body, _ := json.Marshal(patient.LoginRequest{Identifier: "9876543210", Password: "bad"})
		r := httptest.NewRequest(http.MethodPost, "/v1/patients/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Login(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, authCookie(t, rr, middleware.PatientCookie))
		var resp MessageEnvelope
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "invalid credentials: unauthorized", resp.Error)
	}
}

func TestPatientLogin_InvalidBody(t *testing.T) {
	h := NewPatientHandler(&mockPatientSvc{}, testCookies)
	r := httptest.NewRequest(http.MethodPost, "/v1/patients/login", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPatientRegister_ValidationFailure(t *testing.T) {
	h := NewPatientHandler(&mockPatientSvc{}, testCookies)
	body, _ := json.Marshal(domain.RegisterPatientRequest{Name: "Asha"}) // missing required fields
	r := httptest.NewRequest(http.MethodPost, "/v1/patients/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPatientRegister_HappyPath_SetsCookie(t *testing.T) {
	svc := &mockPatientSvc{}
	p := &domain.Patient{PatientID: "p1", Name: "Asha", Phone: "9876543210"}
	svc.On("Register", mock.Anything, mock.Anything).Return(p, nil)
	svc.On("Login", mock.Anything, mock.Anything).Return("signed-token", p, nil)
	h := NewPatientHandler(svc, testCookies)

	body, _ := json.Marshal(domain.RegisterPatientRequest{
		Name: "Asha", Phone: "9876543210", OTP: "123456",
		Email: "asha@example.com", Password: "secret123",
	})
	r := httptest.NewRequest(http.MethodPost, "/v1/patients/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)

	require.Equal(t, http.StatusCreated, rr.Code)
	c := authCookie(t, rr, middleware.PatientCookie)
	require.NotNil(t, c)
	assert.Equal(t, "signed-token", c.Value)
	svc.AssertExpectations(t)
}

func TestPatientRegister_OTPRejected(t *testing.T) {
	svc := &mockPatientSvc{}
	svc.On("Register", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("verification code not found or expired: %w", domain.ErrBadRequest))
	h := NewPatientHandler(svc, testCookies)

	body, _ := json.Marshal(domain.RegisterPatientRequest{
		Name: "Asha", Phone: "9876543210", OTP: "123456",
		Email: "asha@example.com", Password: "secret123",
	})
	r := httptest.NewRequest(http.MethodPost, "/v1/patients/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, authCookie(t, rr, middleware.PatientCookie))
	svc.AssertExpectations(t)
}

func TestPatientLogout_ClearsCookie(t *testing.T) {
	h := NewPatientHandler(&mockPatientSvc{}, testCookies)
	r := httptest.NewRequest(http.MethodPost, "/v1/patients/logout", nil)
	rr := httptest.NewRecorder()
	h.Logout(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	c := authCookie(t, rr, middleware.PatientCookie)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
