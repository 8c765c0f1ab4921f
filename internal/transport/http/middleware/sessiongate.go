package middleware

import (
	"net/http"
	"strings"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	jwtinfra "github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/jwt"
)

// RouteClass is the access class of a page route.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteUserProtected
	RouteDoctorProtected
)

// Page paths the gate redirects to.
const (
	loginPage       = "/login"
	doctorLoginPage = "/doctor-login"
	doctorDashboard = "/doctor-dashboard"
	appRoot         = "/"
)

// publicPages is the allow-list of authentication-flow pages.
var publicPages = map[string]bool{
	"/login":           true,
	"/register":        true,
	"/doctor-login":    true,
	"/doctor-register": true,
}

// ClassifyRoute maps a request path to its access class. Pure function; the
// doctor area is everything under /doctor-dashboard, the public set is an
// explicit allow-list, and the rest is user-protected.
func ClassifyRoute(path string) RouteClass {
	if strings.HasPrefix(path, doctorDashboard) {
		return RouteDoctorProtected
	}
	if publicPages[path] {
		return RoutePublic
	}
	return RouteUserProtected
}

type tokenVerifier interface {
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

// SessionGate redirects page requests based on which of the two bearer
// cookies is present. A cookie that fails signature or expiry validation is
// treated as absent. Stateless; evaluates its rules in fixed order per
// request with first match winning.
func SessionGate(verifier tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := ClassifyRoute(r.URL.Path)
			hasUser := hasCredential(r, verifier, PatientCookie, domain.RolePatient)
			hasDoctor := hasCredential(r, verifier, DoctorCookie, domain.RoleDoctor)

			switch {
			case class == RouteDoctorProtected && !hasDoctor:
				http.Redirect(w, r, doctorLoginPage, http.StatusFound)
			case class != RouteDoctorProtected && !hasUser && class != RoutePublic:
				http.Redirect(w, r, loginPage, http.StatusFound)
			case class != RouteDoctorProtected && hasUser && class == RoutePublic:
				http.Redirect(w, r, appRoot, http.StatusFound)
			case r.URL.Path == doctorLoginPage && hasDoctor:
				http.Redirect(w, r, doctorDashboard, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func hasCredential(r *http.Request, verifier tokenVerifier, cookieName, role string) bool {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return false
	}
	if verifier == nil {
		return true
	}
	claims, err := verifier.Verify(c.Value)
	if err != nil {
		return false
	}
	return claims.Role == role
}
