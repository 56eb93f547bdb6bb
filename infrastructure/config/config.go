package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion     string `yaml:"aws_region"`
	DynamoDBTable string `yaml:"table_name"`
	IndexName     string `yaml:"gsi1_index_name"`
	MediaBucket   string `yaml:"media_bucket"`
	EventBusName  string `yaml:"event_bus_name"`

	// UseMemoryStore swaps DynamoDB for the in-process store (local runs)
	UseMemoryStore bool `yaml:"use_memory_store"`

	// Presigned URL lifetime in seconds
	PresignExpirySeconds int `yaml:"presign_expiry_seconds"`

	// Lambda configuration
	IsLambda           bool   `yaml:"-"`
	LambdaFunctionName string `yaml:"-"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Authentication
	UserPoolID       string   `yaml:"user_pool_id"`
	JWTSigningMethod string   `yaml:"jwt_signing_method"`
	JWTSecret        string   `yaml:"jwt_secret"`
	JWTPublicKey     string   `yaml:"jwt_public_key"`
	JWTIssuer        string   `yaml:"jwt_issuer"`
	JWTAudience      []string `yaml:"jwt_audience"`

	// Rate limits, requests per minute
	RateLimitIP   int `yaml:"rate_limit_ip"`
	RateLimitUser int `yaml:"rate_limit_user"`

	// Feature flags
	EnableMetrics      bool     `yaml:"enable_metrics"`
	EnableTracing      bool     `yaml:"enable_tracing"`
	EnableCORS         bool     `yaml:"enable_cors"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// ConfigFile is the YAML file the base values came from, if any
	ConfigFile string `yaml:"-"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		ServerAddress:        ":8080",
		Environment:          "development",
		AWSRegion:            "us-east-1",
		DynamoDBTable:        "rollout",
		IndexName:            "GSI1",
		PresignExpirySeconds: 900,
		LogLevel:             "info",
		JWTSigningMethod:     "HS256",
		RateLimitIP:          100,
		RateLimitUser:        200,
		EnableCORS:           true,
		CORSAllowedOrigins:   []string{"*"},
	}
}

// LoadConfig loads the optional CONFIG_FILE and overlays environment variables
func LoadConfig() (*Config, error) {
	cfg, err := NewLoader(os.Getenv("CONFIG_FILE")).Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto cfg
func applyEnv(cfg *Config) {
	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.AWSRegion = getEnv("AWS_REGION", getEnv("REGION", cfg.AWSRegion))
	cfg.DynamoDBTable = getEnv("TABLE_NAME", cfg.DynamoDBTable)
	cfg.IndexName = getEnv("GSI1_INDEX_NAME", cfg.IndexName)
	cfg.MediaBucket = getEnv("MEDIA_BUCKET", cfg.MediaBucket)
	cfg.EventBusName = getEnv("EVENT_BUS_NAME", cfg.EventBusName)
	cfg.PresignExpirySeconds = getEnvInt("PRESIGN_EXPIRY_SECONDS", cfg.PresignExpirySeconds)
	cfg.UseMemoryStore = getEnvBool("USE_MEMORY_STORE", cfg.UseMemoryStore)

	cfg.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", "")
	cfg.IsLambda = getEnvBool("IS_LAMBDA", cfg.LambdaFunctionName != "")

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.UserPoolID = getEnv("USER_POOL_ID", cfg.UserPoolID)
	cfg.JWTSigningMethod = getEnv("JWT_SIGNING_METHOD", cfg.JWTSigningMethod)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTPublicKey = getEnv("JWT_PUBLIC_KEY", cfg.JWTPublicKey)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTAudience = getEnvList("JWT_AUDIENCE", cfg.JWTAudience)

	cfg.RateLimitIP = getEnvInt("RATE_LIMIT_IP", cfg.RateLimitIP)
	cfg.RateLimitUser = getEnvInt("RATE_LIMIT_USER", cfg.RateLimitUser)

	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)
	cfg.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.PresignExpirySeconds <= 0 {
		return fmt.Errorf("PRESIGN_EXPIRY_SECONDS must be positive")
	}
	if c.Environment == "production" {
		if c.UseMemoryStore {
			return fmt.Errorf("USE_MEMORY_STORE is not allowed in production")
		}
		if c.MediaBucket == "" {
			return fmt.Errorf("MEDIA_BUCKET is required in production")
		}
		if !c.IsLambda && c.JWTSecret == "" && c.JWTPublicKey == "" {
			return fmt.Errorf("JWT_SECRET or JWT_PUBLIC_KEY is required in production")
		}
	}

	return nil
}

// PresignExpiry is the signed URL lifetime
func (c *Config) PresignExpiry() time.Duration {
	return time.Duration(c.PresignExpirySeconds) * time.Second
}

// HasLocalJWT reports whether bearer tokens can be validated in process
func (c *Config) HasLocalJWT() bool {
	return c.JWTSecret != "" || c.JWTPublicKey != ""
}

// TokenIssuer is the issuer local bearer tokens must carry. JWT_ISSUER wins;
// otherwise it is derived from the Cognito user pool. Empty skips the check.
func (c *Config) TokenIssuer() string {
	if c.JWTIssuer != "" {
		return c.JWTIssuer
	}
	if c.UserPoolID == "" {
		return ""
	}
	region := c.AWSRegion
	if prefix, _, ok := strings.Cut(c.UserPoolID, "_"); ok && prefix != "" {
		region = prefix
	}
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, c.UserPoolID)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
