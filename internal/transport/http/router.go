package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/appointment"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/doctor"
	fileapp "github.com/manoj7417/doctor-appointment-25-sub001/internal/application/file"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/notification"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/otp"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/patient"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/payment"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/prescription"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/config"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/dynamo"
	jwtinfra "github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/jwt"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/otpstore"
	s3infra "github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/s3"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/sms"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/smtp"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/transport/http/handler"
	appmiddleware "github.com/manoj7417/doctor-appointment-25-sub001/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	PatientRepo      *dynamo.PatientRepo
	DoctorRepo       *dynamo.DoctorRepo
	AppointmentRepo  *dynamo.AppointmentRepo
	PrescriptionRepo *dynamo.PrescriptionRepo
	PaymentRepo      *dynamo.PaymentRepo
	NotificationRepo *dynamo.NotificationRepo
	FileRepo         *dynamo.FileRepo
	OTPStore         otpstore.Store
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sms.Sender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	cookies := handler.CookieSettings{Secure: cfg.IsProduction()}
	if deps.JWTProvider != nil {
		cookies.MaxAge = int(deps.JWTProvider.Expiry().Seconds())
	}

	otpSvc := otp.NewService(otp.ServiceDeps{
		Store:         deps.OTPStore,
		Sender:        deps.SMSSender,
		CountryPrefix: cfg.SMSCountryPrefix,
	})
	patientSvc := patient.NewService(patient.ServiceDeps{
		PatientRepo: deps.PatientRepo,
		OTPService:  otpSvc,
		JWTProvider: deps.JWTProvider,
	})
	doctorSvc := doctor.NewService(doctor.ServiceDeps{
		DoctorRepo:  deps.DoctorRepo,
		JWTProvider: deps.JWTProvider,
	})
	apptSvc := appointment.NewService(appointment.ServiceDeps{
		AppointmentRepo:  deps.AppointmentRepo,
		DoctorRepo:       deps.DoctorRepo,
		PatientRepo:      deps.PatientRepo,
		NotificationRepo: deps.NotificationRepo,
		Mailer:           deps.Mailer,
	})
	prescSvc := prescription.NewService(prescription.ServiceDeps{
		PrescriptionRepo: deps.PrescriptionRepo,
		AppointmentRepo:  deps.AppointmentRepo,
	})
	paymentSvc := payment.NewService(payment.ServiceDeps{
		PaymentRepo:     deps.PaymentRepo,
		AppointmentRepo: deps.AppointmentRepo,
		GatewaySecret:   cfg.PaymentSecret,
	})
	notifSvc := notification.NewService(deps.NotificationRepo)
	fileSvc := fileapp.NewService(deps.S3Store, deps.FileRepo)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc)
	patientH := handler.NewPatientHandler(patientSvc, cookies)
	doctorH := handler.NewDoctorHandler(doctorSvc, fileSvc, cookies)
	apptH := handler.NewAppointmentHandler(apptSvc)
	prescH := handler.NewPrescriptionHandler(prescSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	notifH := handler.NewNotificationHandler(notifSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/otp/send", otpH.Send)
		r.With(sensitiveRL.Limit).Post("/otp/verify", otpH.Verify)
		r.With(sensitiveRL.Limit).Post("/patients/register", patientH.Register)
		r.With(sensitiveRL.Limit).Post("/patients/login", patientH.Login)
		r.With(sensitiveRL.Limit).Post("/doctors/register", doctorH.Register)
		r.With(sensitiveRL.Limit).Post("/doctors/login", doctorH.Login)
		r.Post("/patients/logout", patientH.Logout)
		r.Post("/doctors/logout", doctorH.Logout)
		r.Get("/doctors", doctorH.List)
		r.Get("/doctors/slug/{slug}", doctorH.GetBySlug)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/notifications", notifH.ListUnread)
			r.Put("/notifications/{id}", notifH.MarkAsRead)
			r.Get("/appointments/{id}/prescriptions", prescH.ListForAppointment)
			r.Get("/prescriptions/{id}", prescH.Get)

			// Patient routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RolePatient))

				r.Get("/patients/me", patientH.Me)
				r.Put("/patients/me", patientH.Update)
				r.Post("/appointments", apptH.Book)
				r.Get("/appointments", apptH.ListMine)
				r.Put("/appointments/{id}/cancel", apptH.Cancel)
				r.Get("/prescriptions", prescH.ListMine)
				r.Post("/payments/order", paymentH.CreateOrder)
				r.Post("/payments/verify", paymentH.Verify)
			})

			// Doctor routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleDoctor))

				r.Get("/doctors/me", doctorH.Me)
				r.Put("/doctors/me", doctorH.Update)
				r.Post("/doctors/me/photo", doctorH.UploadPhoto)
				r.Get("/doctors/appointments", apptH.ListForDoctor)
				r.Put("/appointments/{id}/complete", apptH.Complete)
				r.Post("/prescriptions", prescH.Create)
				r.Post("/doctors/backfill-slugs", doctorH.BackfillSlugs)
			})
		})
	})

	// Page routes: the SPA is served behind the cookie gate.
	if cfg.StaticDir != "" {
		var verifier interface {
			Verify(tokenStr string) (*jwtinfra.Claims, error)
		}
		if deps.JWTProvider != nil {
			verifier = deps.JWTProvider
		}
		pages := appmiddleware.SessionGate(verifier)(spaHandler(cfg.StaticDir))
		r.NotFound(pages.ServeHTTP)
	}

	return r
}

// spaHandler serves files from dir, falling back to index.html for paths
// without a matching file so client-side routing works.
func spaHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}
