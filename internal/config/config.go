package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ryanuber/go-glob"
)

type Config struct {
	// HTTP
	APIURL string
	Port   string

	// Storage
	DataDir string

	// Logging
	GinMode   string
	LogFormat string

	// Calendar and reports
	TimeZone     string
	BillsPattern string
}

// Load reads the configuration from the environment.
//
// A .env file in the working directory is loaded first if it exists.
// Variables that are already set take precedence over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:       getEnv("API_URL", ""),
		Port:         getEnv("PORT", "8080"),
		DataDir:      getEnv("DATA_DIR", "data"),
		GinMode:      getEnv("GIN_MODE", "release"),
		LogFormat:    getEnv("LOG_FORMAT", ""),
		TimeZone:     getEnv("TZ_NAME", "Local"),
		BillsPattern: getEnv("BILLS_CATEGORY_PATTERN", "*bill*"),
	}
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var errors []string

	if c.APIURL == "" {
		errors = append(errors, "API_URL must be set")
	} else if u, err := url.Parse(c.APIURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API_URL '%s': %v", c.APIURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API_URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DataDir == "" {
		errors = append(errors, "DATA_DIR cannot be empty")
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errors = append(errors, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid LOG_FORMAT '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid TZ_NAME '%s': %v", c.TimeZone, err))
	}

	if c.BillsPattern == "" || c.BillsPattern == "*" || !glob.Glob(strings.ToLower(c.BillsPattern), "bills") {
		errors = append(errors, fmt.Sprintf("invalid BILLS_CATEGORY_PATTERN '%s': must match the category 'bills' and not every category", c.BillsPattern))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// URL returns the parsed API_URL. Call Validate first.
func (c *Config) URL() *url.URL {
	u, _ := url.Parse(c.APIURL)
	return u
}

// Location returns the time zone used for calendar days and months.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DatabasePath returns the path of the SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "gorm.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
