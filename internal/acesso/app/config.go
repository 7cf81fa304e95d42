package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// CatalogFile is the YAML catalog; the embedded default when empty.
	CatalogFile string

	// One of JWKSURL and JWKSFile is required; the file suits development.
	JWKSURL             string
	JWKSFile            string
	JWKSRefreshInterval time.Duration `validate:"gt=0"`
	Issuer              string
	Audience            []string
	Leeway              time.Duration `validate:"gte=0"`

	DatabaseFile    string        `validate:"required"`
	SubjectKey      string
	SubjectKeyFile  string
	AuditFlushDelay time.Duration `validate:"gt=0"`
	AuditBatch      int           `validate:"gt=0"`
	AuditRetention  time.Duration `validate:"gt=0"`

	Env                  string        `validate:"oneof=dev staging prod"`
	LogLevel             string        `validate:"oneof=debug info warn error"`
	LogFormat            string        `validate:"oneof=json text"`
	LogFile              string
	Port                 int           `validate:"min=1,max=65535"`
	ShutdownGracePeriod  time.Duration `validate:"gt=0"`
	HousekeepingInterval time.Duration `validate:"gt=0"`
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	return Config{
		CatalogFile:          os.Getenv("ACESSO_CATALOG_FILE"),
		JWKSURL:              os.Getenv("ACESSO_JWKS_URL"),
		JWKSFile:             os.Getenv("ACESSO_JWKS_FILE"),
		JWKSRefreshInterval:  getEnvDurationOrDefault("ACESSO_JWKS_REFRESH_INTERVAL", 10*time.Minute),
		Issuer:               os.Getenv("ACESSO_ISSUER"),
		Audience:             splitList(os.Getenv("ACESSO_AUDIENCE")),
		Leeway:               getEnvDurationOrDefault("ACESSO_TOKEN_LEEWAY", 30*time.Second),
		DatabaseFile:         getEnvOrDefault("ACESSO_DATABASE_FILE", "acesso.db"),
		SubjectKey:           os.Getenv("ACESSO_SUBJECT_KEY"),
		SubjectKeyFile:       getEnvOrDefault("ACESSO_SUBJECT_KEY_FILE", "subject.key"),
		AuditFlushDelay:      getEnvDurationOrDefault("ACESSO_AUDIT_FLUSH_DELAY", 2*time.Second),
		AuditBatch:           getEnvIntOrDefault("ACESSO_AUDIT_BATCH", 100),
		AuditRetention:       getEnvDurationOrDefault("ACESSO_AUDIT_RETENTION", 90*24*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		LogFile:              os.Getenv("LOG_FILE"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("config: %s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
		} else {
			errs = append(errs, err)
		}
	}
	if c.JWKSURL == "" && c.JWKSFile == "" {
		errs = append(errs, errors.New("config: ACESSO_JWKS_URL or ACESSO_JWKS_FILE is required"))
	}
	if c.SubjectKey == "" && c.SubjectKeyFile == "" {
		errs = append(errs, errors.New("config: ACESSO_SUBJECT_KEY or ACESSO_SUBJECT_KEY_FILE is required"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
