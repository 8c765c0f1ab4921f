package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	jwtinfra "github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/jwt"
)

type stubVerifier struct {
	claims map[string]*jwtinfra.Claims
}

func (v *stubVerifier) Verify(tokenStr string) (*jwtinfra.Claims, error) {
	if c, ok := v.claims[tokenStr]; ok {
		return c, nil
	}
	return nil, errors.New("token is invalid")
}

func newStubVerifier() *stubVerifier {
	return &stubVerifier{claims: map[string]*jwtinfra.Claims{
		"patient-token": {SubjectID: "p1", Role: domain.RolePatient},
		"doctor-token":  {SubjectID: "d1", Role: domain.RoleDoctor},
	}}
}

func gateRequest(t *testing.T, path string, cookies map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	handler := SessionGate(newStubVerifier())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestClassifyRoute(t *testing.T) {
	assert.Equal(t, RoutePublic, ClassifyRoute("/login"))
	assert.Equal(t, RoutePublic, ClassifyRoute("/doctor-register"))
	assert.Equal(t, RouteDoctorProtected, ClassifyRoute("/doctor-dashboard"))
	assert.Equal(t, RouteDoctorProtected, ClassifyRoute("/doctor-dashboard/profile"))
	assert.Equal(t, RouteUserProtected, ClassifyRoute("/find-doctor"))
	assert.Equal(t, RouteUserProtected, ClassifyRoute("/"))
}

func TestSessionGateDoctorAreaWithoutDoctorCookie(t *testing.T) {
	rec := gateRequest(t, "/doctor-dashboard/profile", nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/doctor-login", rec.Header().Get("Location"))
}

func TestSessionGateLoginWithValidPatientCookie(t *testing.T) {
	rec := gateRequest(t, "/login", map[string]string{PatientCookie: "patient-token"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSessionGateProtectedPageWithoutCookies(t *testing.T) {
	rec := gateRequest(t, "/find-doctor", nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSessionGateDoctorLoginWithDoctorCookie(t *testing.T) {
	rec := gateRequest(t, "/doctor-login", map[string]string{DoctorCookie: "doctor-token"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/doctor-dashboard", rec.Header().Get("Location"))
}

func TestSessionGatePassThrough(t *testing.T) {
	rec := gateRequest(t, "/find-doctor", map[string]string{PatientCookie: "patient-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionGateInvalidCookieTreatedAsAbsent(t *testing.T) {
	rec := gateRequest(t, "/find-doctor", map[string]string{PatientCookie: "garbage"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSessionGateDoctorCookieDoesNotOpenPatientArea(t *testing.T) {
	rec := gateRequest(t, "/find-doctor", map[string]string{DoctorCookie: "doctor-token"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSessionGateNilVerifierTrustsPresence(t *testing.T) {
	handler := SessionGate(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/find-doctor", nil)
	req.AddCookie(&http.Cookie{Name: PatientCookie, Value: "anything"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
