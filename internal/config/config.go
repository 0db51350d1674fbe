package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	ProfileBaseURL string
	Database       DatabaseConfig
	JWT            JWTConfig
	Cookie         CookieConfig
	Geofence       GeofenceConfig
	SMTP           SMTPConfig
	Upload         UploadConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds refresh-cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// GeofenceConfig holds the shop reference point for rating submissions
type GeofenceConfig struct {
	ShopLatitude  float64
	ShopLongitude float64
	RadiusMeters  float64
}

// SMTPConfig holds outgoing mail configuration.
// Mail falls back to log-only delivery when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// UploadConfig holds employee photo upload configuration
type UploadConfig struct {
	Dir          string
	MaxSizeBytes int64
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:        appMode,
		Port:           getEnv("PORT", "3000"),
		ProfileBaseURL: getEnv("PROFILE_BASE_URL", "https://staffhub.local/profile"),
		Database:       loadDatabaseConfig(),
		JWT:            loadJWTConfig(),
		Cookie:         loadCookieConfig(),
		Geofence:       loadGeofenceConfig(),
		SMTP:           loadSMTPConfig(),
		Upload:         loadUploadConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "staffhub"),
	}
}

func loadJWTConfig() JWTConfig {
	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv("JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

func loadCookieConfig() CookieConfig {
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "strict"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadGeofenceConfig() GeofenceConfig {
	lat, _ := strconv.ParseFloat(getEnv("SHOP_LATITUDE", "12.9716"), 64)
	lon, _ := strconv.ParseFloat(getEnv("SHOP_LONGITUDE", "77.5946"), 64)
	radius, _ := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_METERS", "10"), 64)

	return GeofenceConfig{
		ShopLatitude:  lat,
		ShopLongitude: lon,
		RadiusMeters:  radius,
	}
}

func loadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnv("SMTP_PORT", "587"),
		Username: getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASS", ""),
		From:     getEnv("SMTP_FROM", "no-reply@staffhub.local"),
	}
}

func loadUploadConfig() UploadConfig {
	maxSize, _ := strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "5242880"), 10, 64)

	return UploadConfig{
		Dir:          getEnv("UPLOAD_DIR", "uploads"),
		MaxSizeBytes: maxSize,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://staffhub.local"
	}
	return origins
}
