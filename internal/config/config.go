package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	OTPTTL    time.Duration
	RedisAddr string // empty → in-memory OTP store

	SMSProvider      string // "sns" | "twilio"
	SNSRegion        string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	SMSCountryPrefix string // prepended to normalized numbers on dispatch

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	PaymentKeyID  string
	PaymentSecret string

	StaticDir      string
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Patients      string
	Doctors       string
	Appointments  string
	Prescriptions string
	Payments      string
	Notifications string
	Files         string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "ap-south-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Patients:      getEnv("DYNAMO_TABLE_PATIENTS", "patients"),
			Doctors:       getEnv("DYNAMO_TABLE_DOCTORS", "doctors"),
			Appointments:  getEnv("DYNAMO_TABLE_APPOINTMENTS", "appointments"),
			Prescriptions: getEnv("DYNAMO_TABLE_PRESCRIPTIONS", "prescriptions"),
			Payments:      getEnv("DYNAMO_TABLE_PAYMENTS", "payments"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Files:         getEnv("DYNAMO_TABLE_FILES", "files"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "doctor-appointment-files"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		OTPTTL:    time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,
		RedisAddr: getEnv("REDIS_ADDR", ""),

		SMSProvider:      getEnv("SMS_PROVIDER", "sns"),
		SNSRegion:        getEnv("SNS_REGION", "ap-south-1"),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:       getEnv("TWILIO_FROM", ""),
		SMSCountryPrefix: getEnv("SMS_COUNTRY_PREFIX", "+91"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		PaymentKeyID:  getEnv("PAYMENT_KEY_ID", ""),
		PaymentSecret: getEnv("PAYMENT_SECRET", ""),

		StaticDir:      getEnv("STATIC_DIR", "./web/dist"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// IsProduction reports whether the server runs with production settings
// (Secure cookies, real AWS endpoints).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
