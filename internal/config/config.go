package config

import (
	"os"
	"strings"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string // Base URL for action links; empty means derive from the request

	// Action links
	ActionLinkSecret string // HMAC key for signed review links

	// Recipient groups (comma-separated address lists)
	AdminEmailRecipients string
	TownEmailRecipients  string

	// Email delivery (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string

	// Object storage (DigitalOcean Spaces, S3-compatible)
	SpacesBucket    string
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesAccessKey string
	SpacesSecretKey string

	// Test submissions
	TestEmailAddresses         string // comma-separated sponsor addresses treated as test submissions
	SkipTownForTestSubmissions bool

	// CORS
	CORSOrigins string

	// Rate limiter backing store; empty means in-memory
	RedisURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":8080"),
		BaseURL:          getEnv("APP_BASE_URL", ""),
		ActionLinkSecret: getEnv("ACTION_LINK_SECRET", ""),

		AdminEmailRecipients: getEnv("ADMIN_EMAIL_RECIPIENTS", ""),
		TownEmailRecipients:  getEnv("TOWN_EMAIL_RECIPIENTS", ""),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@banners.bhmemorialpark.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Hometown Heroes BH"),

		SpacesBucket:    getEnv("DO_SPACES_BUCKET_NAME", ""),
		SpacesEndpoint:  getEnv("DO_SPACES_ENDPOINT", ""),
		SpacesRegion:    getEnv("DO_SPACES_REGION", ""),
		SpacesAccessKey: getEnv("DO_SPACES_ACCESS_KEY", ""),
		SpacesSecretKey: getEnv("DO_SPACES_SECRET_KEY", ""),

		TestEmailAddresses:         getEnv("TEST_EMAIL_ADDRESSES", ""),
		SkipTownForTestSubmissions: getEnv("SKIP_TOWN_FOR_TEST_SUBMISSIONS", "") == "true",

		CORSOrigins: getEnv("CORS_ORIGINS", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasActionLinkSecret reports whether signed action links can be issued and verified.
func (c *Config) HasActionLinkSecret() bool {
	return c.ActionLinkSecret != ""
}

// IsEmailEnabled reports whether the Resend API is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.ResendAPIKey != ""
}

// IsStorageEnabled reports whether Spaces credentials are fully configured.
func (c *Config) IsStorageEnabled() bool {
	return c.SpacesBucket != "" && c.SpacesEndpoint != "" && c.SpacesRegion != "" &&
		c.SpacesAccessKey != "" && c.SpacesSecretKey != ""
}

// AdminEmails returns the parsed admin recipient list.
func (c *Config) AdminEmails() []string {
	return ParseEmailList(c.AdminEmailRecipients)
}

// TownEmails returns the parsed town clerk recipient list.
func (c *Config) TownEmails() []string {
	return ParseEmailList(c.TownEmailRecipients)
}

// PrimaryAdminEmail returns the first admin recipient, or "" when none are
// configured. Used as the reply-to for applicant-facing messages.
func (c *Config) PrimaryAdminEmail() string {
	admins := c.AdminEmails()
	if len(admins) == 0 {
		return ""
	}
	return admins[0]
}

// IsTestSubmission reports whether the sponsor address belongs to the
// configured test address list. Comparison is case-insensitive.
func (c *Config) IsTestSubmission(sponsorEmail string) bool {
	sponsor := strings.ToLower(strings.TrimSpace(sponsorEmail))
	if sponsor == "" {
		return false
	}
	for _, addr := range ParseEmailList(c.TestEmailAddresses) {
		if strings.ToLower(addr) == sponsor {
			return true
		}
	}
	return false
}

// ParseEmailList splits a comma-separated address list, trimming whitespace
// and dropping empty entries.
func ParseEmailList(value string) []string {
	if value == "" {
		return nil
	}
	var emails []string
	for _, part := range strings.Split(value, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			emails = append(emails, addr)
		}
	}
	return emails
}
