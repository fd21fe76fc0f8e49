package config

import (
	"os"
	"strconv"
	"time"

	"ponto-backend/internal/mailer"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

type Config struct {
	Port   string
	AppEnv string

	DBDriver string
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	AppName string
	Locale  string

	Mail mailer.Config

	GeocoderURL       string
	GeocoderUserAgent string

	ReportTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. Call godotenv.Load
// first when a .env file should be honoured.
func Load() *Config {
	return &Config{
		Port:   GetEnv("PORT", "3000"),
		AppEnv: GetEnv("APP_ENV", "development"),

		DBDriver: GetEnv("DB_DRIVER", "mysql"),
		DBDSN:    GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/ponto?charset=utf8mb4&parseTime=True&loc=UTC"),

		JWTSecret: GetEnv("JWT_SECRET", "ponto-dev-secret"),
		JWTTTL:    time.Duration(GetEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,

		AppName: GetEnv("APP_NAME", "Clean My House"),
		Locale:  GetEnv("LOCALE", "pt-BR"),

		Mail: mailer.Config{
			Host:     GetEnv("EMAIL_HOST", ""),
			Port:     GetEnvAsInt("EMAIL_PORT", 587),
			Username: GetEnv("EMAIL_USER", ""),
			Password: GetEnv("EMAIL_PASS", ""),
			From:     GetEnv("EMAIL_FROM", GetEnv("EMAIL_USER", "")),
		},

		GeocoderURL:       GetEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: GetEnv("GEOCODER_USER_AGENT", "CleanMyHouse-TimeTracking/1.0"),

		ReportTimeout: time.Duration(GetEnvAsInt("REPORT_TIMEOUT_SECONDS", 60)) * time.Second,

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "console"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
