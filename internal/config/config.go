package config

import (
	"os"
	"strconv"

	"billboard_compliance/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Object storage for report evidence (S3-compatible)
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	CDNBaseURL        string

	// Compliance rules file
	RulesPath string

	// Report submission limits
	ReportRateLimit  int
	ReportRateWindow int

	// Retention policy (days)
	AnonymizeAfterDays int
	DeleteAfterDays    int
	AuditRetentionDays int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment. Required values abort startup.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	rulesPath := os.Getenv("COMPLIANCE_RULES_PATH")
	if rulesPath == "" {
		rulesPath = "configs/compliance_rules.yaml"
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "auto"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3Region:          region,
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		CDNBaseURL:        os.Getenv("CDN_BASE_URL"),

		RulesPath: rulesPath,

		ReportRateLimit:  envInt("REPORT_RATE_LIMIT", 10),
		ReportRateWindow: envInt("REPORT_RATE_WINDOW_SECONDS", 3600),

		AnonymizeAfterDays: envInt("ANONYMIZE_AFTER_DAYS", 30),
		DeleteAfterDays:    envInt("DELETE_AFTER_DAYS", 365),
		AuditRetentionDays: envInt("AUDIT_RETENTION_DAYS", 730),

		LogLevel: os.Getenv("LOG_LEVEL"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
