package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"workmesh-backend/models"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// FormTokenBytes is the entropy of a client form token. 24 random
// bytes hex-encode to 48 characters.
const FormTokenBytes = 24

// GetConfig reads the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	// Handle nested JSON structure from config.json
	if v.IsSet("app") {
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Token lifetimes may arrive as duration strings ("15m", "168h")
	if s := v.GetString("jwt_access_expires_in"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid jwt_access_expires_in format: %w", err)
		}
		config.JWTAccessExpiresIn = d
	}
	if s := v.GetString("jwt_refresh_expires_in"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid jwt_refresh_expires_in format: %w", err)
		}
		config.JWTRefreshExpiresIn = d
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "Work Mesh Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8080")

	// JWT defaults - two secrets, two lifetimes
	v.SetDefault("jwt_access_secret", "dev-access-secret")
	v.SetDefault("jwt_refresh_secret", "dev-refresh-secret")
	v.SetDefault("jwt_access_expires_in", "15m")
	v.SetDefault("jwt_refresh_expires_in", "168h") // 7 days

	// AWS defaults
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	// SMTP defaults
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("smtp_from", "\"Work Mesh\" <noreply@workmesh.com>")

	// Frontend base URL for client form links
	v.SetDefault("frontend_base_url", "http://localhost:3000")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"http://localhost:5173"})

	// Base Path default
	v.SetDefault("basePath", "/api")

	// Tables to create at bootstrap
	v.SetDefault("tables", []string{"organizations", "employees", "projects", "project_requests"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.AppEnv == "production" {
		if c.JWTAccessSecret == "dev-access-secret" {
			return fmt.Errorf("JWT_ACCESS_SECRET must be set in production environment")
		}
		if c.JWTRefreshSecret == "dev-refresh-secret" {
			return fmt.Errorf("JWT_REFRESH_SECRET must be set in production environment")
		}
		if c.AWSAccessKeyID == "" {
			fmt.Println("No AWS credentials provided, assuming IAM role is used")
		}
	}

	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return fmt.Errorf("access and refresh signing secrets must differ")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	// App section
	if v.IsSet("app.name") {
		v.Set("app_name", v.GetString("app.name"))
	}
	if v.IsSet("app.version") {
		v.Set("app_version", v.GetString("app.version"))
	}
	if v.IsSet("app.env") {
		v.Set("app_env", v.GetString("app.env"))
	}
	if v.IsSet("app.host") {
		v.Set("app_host", v.GetString("app.host"))
	}
	if v.IsSet("app.port") {
		v.Set("app_port", v.GetString("app.port"))
	}

	// JWT section
	if v.IsSet("jwt.access_secret") {
		v.Set("jwt_access_secret", v.GetString("jwt.access_secret"))
	}
	if v.IsSet("jwt.refresh_secret") {
		v.Set("jwt_refresh_secret", v.GetString("jwt.refresh_secret"))
	}
	if v.IsSet("jwt.access_expires_in") {
		v.Set("jwt_access_expires_in", v.GetString("jwt.access_expires_in"))
	}
	if v.IsSet("jwt.refresh_expires_in") {
		v.Set("jwt_refresh_expires_in", v.GetString("jwt.refresh_expires_in"))
	}

	// AWS section
	if v.IsSet("aws.region") {
		v.Set("aws_region", v.GetString("aws.region"))
	}
	if v.IsSet("aws.access_key_id") {
		v.Set("aws_access_key_id", v.GetString("aws.access_key_id"))
	}
	if v.IsSet("aws.secret_access_key") {
		v.Set("aws_secret_access_key", v.GetString("aws.secret_access_key"))
	}
	if v.IsSet("aws.dynamodb_endpoint") {
		v.Set("dynamodb_endpoint", v.GetString("aws.dynamodb_endpoint"))
	}
	if v.IsSet("aws.dynamodb_table_prefix") {
		v.Set("dynamodb_table_prefix", v.GetString("aws.dynamodb_table_prefix"))
	}

	// SMTP section
	if v.IsSet("smtp.host") {
		v.Set("smtp_host", v.GetString("smtp.host"))
	}
	if v.IsSet("smtp.port") {
		v.Set("smtp_port", v.GetString("smtp.port"))
	}
	if v.IsSet("smtp.user") {
		v.Set("smtp_user", v.GetString("smtp.user"))
	}
	if v.IsSet("smtp.pass") {
		v.Set("smtp_pass", v.GetString("smtp.pass"))
	}
	if v.IsSet("smtp.from") {
		v.Set("smtp_from", v.GetString("smtp.from"))
	}

	// Frontend section
	if v.IsSet("frontend.base_url") {
		v.Set("frontend_base_url", v.GetString("frontend.base_url"))
	}

	// Logging section
	if v.IsSet("logging.level") {
		v.Set("log_level", v.GetString("logging.level"))
	}
	if v.IsSet("logging.format") {
		v.Set("log_format", v.GetString("logging.format"))
	}

	// CORS section
	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}

	// Base Path
	if v.IsSet("basePath") {
		v.Set("basePath", v.GetString("basePath"))
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// HashPassword hashes a plain text password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a hashed password with a plain text password.
// Returns false when no hash is stored.
func CheckPassword(hashedPassword, password string) bool {
	if hashedPassword == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseDeadline accepts the date formats clients send: a bare date or
// a full RFC 3339 timestamp.
func ParseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized deadline format: %q", s)
	}
	return t, nil
}

// GenerateFormToken returns a 48-character hex token from a
// cryptographically secure random source.
func GenerateFormToken() (string, error) {
	buf := make([]byte, FormTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
