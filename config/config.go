package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the minimum accepted length for the token signing
// secret. Anything shorter is trivially brute-forceable offline.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	PostgresURI string `env:"POSTGRESQL_URI,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Port        string `env:"PORT" envDefault:"3000"`

	// SMTP settings for outbound mail. Optional: the send-email endpoint
	// reports a server error when the host is unset.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPSender   string `env:"SMTP_SENDER"`

	// SuperadminPassword seeds the initial superadmin account when the
	// database has none. Defaults to "changeme"; change it on first login.
	SuperadminPassword string `env:"SUPERADMIN_PASSWORD" envDefault:"changeme"`
}

// MailConfigured reports whether outbound email can be sent.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPSender != ""
}

var cfg *Config

// LoadENV loads variables from a .env file if one exists. A missing file is
// not an error; deployments set real environment variables instead.
func LoadENV() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// Load parses the environment into a Config and stores it for Get.
func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(c.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes long, got %d; "+
			"generate one with: openssl rand -base64 32", MinJWTSecretLength, len(c.JWTSecret))
	}

	cfg = c
	return c, nil
}

// Get returns the configuration loaded by Load.
func Get() *Config {
	return cfg
}
