package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// DatabaseConfig holds PostgreSQL connection settings. Persistence is optional:
// leaving DB_HOST empty keeps the ledger purely in memory.
type DatabaseConfig struct {
	Host               string `envconfig:"DB_HOST"`
	Port               string `envconfig:"DB_PORT" default:"5432"`
	User               string `envconfig:"DB_USER"`
	Password           string `envconfig:"DB_PASSWORD"`
	Name               string `envconfig:"DB_NAME"`
	SSLMode            string `envconfig:"DB_SSLMODE" default:"disable"`
	ApplicationName    string `envconfig:"DB_APPLICATION_NAME" default:"barangay"`
	MaxOpenConns       int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns       int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetimeSec int    `envconfig:"DB_CONN_MAX_LIFETIME_SEC" default:"300"`
}

func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

// MinIOConfig holds object storage settings for payment proofs and issued documents.
type MinIOConfig struct {
	Endpoint   string        `envconfig:"MINIO_ENDPOINT"`
	AccessKey  string        `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string        `envconfig:"MINIO_SECRET_KEY"`
	Bucket     string        `envconfig:"MINIO_BUCKET" default:"barangay"`
	UseSSL     bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	PresignTTL time.Duration `envconfig:"MINIO_PRESIGN_TTL" default:"15m"`
}

func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

type AuthConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET" default:"barangay-dev-secret"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

// TracingConfig follows the standard OTEL_* variable names so collectors and
// sidecars configured for other services work unchanged.
type TracingConfig struct {
	Disabled    bool    `envconfig:"OTEL_SDK_DISABLED" default:"false"`
	ServiceName string  `envconfig:"OTEL_SERVICE_NAME" default:"barangay"`
	Protocol    string  `envconfig:"OTEL_EXPORTER_OTLP_PROTOCOL" default:"grpc"`
	Endpoint    string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Sampler     string  `envconfig:"OTEL_TRACES_SAMPLER" default:"parentbased_traceidratio"`
	SamplerArg  float64 `envconfig:"OTEL_TRACES_SAMPLER_ARG" default:"1.0"`
}

// SettingsConfig seeds the barangay's public settings and fee schedule.
type SettingsConfig struct {
	BarangayName   string   `envconfig:"BARANGAY_NAME" default:"Barangay San Antonio"`
	Address        string   `envconfig:"BARANGAY_ADDRESS" default:"123 Barangay Hall Road, San Antonio, Quezon City"`
	PhoneNumber    string   `envconfig:"BARANGAY_PHONE" default:"+632-8123-4567"`
	Email          string   `envconfig:"BARANGAY_EMAIL" default:"info@barangaysanantonio.gov.ph"`
	OperatingHours string   `envconfig:"BARANGAY_HOURS" default:"Monday to Friday: 8:00 AM - 5:00 PM"`
	PaymentMethods []string `envconfig:"PAYMENT_METHODS" default:"gcash,paymaya,bank_transfer,cash,over_the_counter"`

	FeeBarangayClearance      decimal.Decimal `envconfig:"FEE_BARANGAY_CLEARANCE" default:"50"`
	FeeCertificateOfResidency decimal.Decimal `envconfig:"FEE_CERTIFICATE_OF_RESIDENCY" default:"30"`
	FeeCertificateOfIndigency decimal.Decimal `envconfig:"FEE_CERTIFICATE_OF_INDIGENCY" default:"25"`
	FeeBusinessPermit         decimal.Decimal `envconfig:"FEE_BUSINESS_PERMIT" default:"200"`
	FeeCedula                 decimal.Decimal `envconfig:"FEE_CEDULA" default:"35"`
	FeeBarangayID             decimal.Decimal `envconfig:"FEE_BARANGAY_ID" default:"40"`
}

// AppConfig is the centralized configuration struct for the application.
type AppConfig struct {
	AppHost  string `envconfig:"APP_HOST" default:"localhost:8080"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	SeedDemo bool   `envconfig:"SEED_DEMO" default:"true"`

	Auth     AuthConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Settings SettingsConfig
	Tracing  TracingConfig
}

// Load reads configuration from environment variables.
// A .env file is picked up when the binary imports github.com/joho/godotenv/autoload;
// real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := new(AppConfig)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("set JWT_SECRET")
	}
	if cfg.Database.Enabled() && (cfg.Database.User == "" || cfg.Database.Name == "") {
		return nil, fmt.Errorf("DB_USER and DB_NAME are required when DB_HOST is set")
	}
	return cfg, nil
}
