package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/config"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/dynamo"
	jwtinfra "github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/jwt"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/otpstore"
	s3infra "github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/s3"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/sms"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/infrastructure/smtp"
	transporthttp "github.com/manoj7417/doctor-appointment-25-sub001/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// OTP store: Redis when an address is configured, per-process map otherwise.
	var otpStore otpstore.Store
	if cfg.RedisAddr != "" {
		otpStore = otpstore.NewRedis(cfg.RedisAddr, cfg.OTPTTL)
		log.Printf("OTP store: redis (%s)", cfg.RedisAddr)
	} else {
		otpStore = otpstore.NewMemory(cfg.OTPTTL)
		log.Println("OTP store: in-memory")
	}

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SMS sender (optional — graceful fallback).
	var smsSender sms.Sender
	var err error
	switch cfg.SMSProvider {
	case "twilio":
		smsSender, err = sms.NewTwilioSender(cfg)
	default:
		smsSender, err = sms.NewSNSSender(cfg)
	}
	if err != nil {
		log.Printf("WARN: SMS sender (%s) not available: %v", cfg.SMSProvider, err)
	}

	deps := &transporthttp.Deps{
		PatientRepo:      dynamo.NewPatientRepo(dynamoClient, cfg.DynamoTables.Patients),
		DoctorRepo:       dynamo.NewDoctorRepo(dynamoClient, cfg.DynamoTables.Doctors),
		AppointmentRepo:  dynamo.NewAppointmentRepo(dynamoClient, cfg.DynamoTables.Appointments),
		PrescriptionRepo: dynamo.NewPrescriptionRepo(dynamoClient, cfg.DynamoTables.Prescriptions),
		PaymentRepo:      dynamo.NewPaymentRepo(dynamoClient, cfg.DynamoTables.Payments),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		FileRepo:         dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files),
		OTPStore:         otpStore,
		S3Store:          s3Store,
		Mailer:           mailer,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
