package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// placeholderMarker flags an unconfigured Apps Script URL. Upload is refused
// while the URL still contains it.
const placeholderMarker = "YOUR_GOOGLE"

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// Store
	StorePath  string
	StorageKey string

	// Google Drive upload proxy (Apps Script web app)
	AppsScriptURL string
	DriveFolderID string

	// CSV export
	CSVFilename string
	BackupDir   string

	// Local backup snapshots
	BackupInterval time.Duration

	// Admin gate
	AdminAccessCode string
	AdminCodeHash   string // bcrypt hash; when set, takes precedence over AdminAccessCode
	JWTSecret       string
	JWTExpiry       time.Duration

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
		StorePath:       getEnv("STORE_PATH", "./data/regdesk.json"),
		StorageKey:      getEnv("STORAGE_KEY", "workshopRegistrations"),
		AppsScriptURL:   getEnv("APPS_SCRIPT_URL", ""),
		DriveFolderID:   getEnv("DRIVE_FOLDER_ID", ""),
		CSVFilename:     getEnv("CSV_FILENAME", "workshop-registrations.csv"),
		BackupDir:       getEnv("BACKUP_DIR", "./backups"),
		BackupInterval:  time.Duration(getEnvInt("BACKUP_INTERVAL_MINUTES", 60)) * time.Minute,
		AdminAccessCode: getEnv("ADMIN_ACCESS_CODE", "ZeroDayEniac2025LinuxEvent"),
		AdminCodeHash:   getEnv("ADMIN_CODE_HASH", ""),
		JWTSecret:       getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:       time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// UploadConfigured reports whether the Apps Script URL looks usable.
// The placeholder check mirrors the drive client's own precondition so
// operators see misconfiguration at startup, not on first submit.
func (c *Config) UploadConfigured() bool {
	return c.AppsScriptURL != "" &&
		!strings.Contains(c.AppsScriptURL, placeholderMarker) &&
		c.DriveFolderID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
