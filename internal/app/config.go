package app

import (
	"fmt"
	"strings"

	coreconfig "github.com/m3rciful/healthmode/core/config"
	coredatabase "github.com/m3rciful/healthmode/core/database"
	"github.com/m3rciful/healthmode/internal/content"
)

// LinksConfig holds the external URLs shown to users. Empty values render as "#".
type LinksConfig struct {
	Privacy   string `yaml:"privacy" envconfig:"PRIVACY_URL"`
	Consent   string `yaml:"consent" envconfig:"CONSENT_URL"`
	Offer     string `yaml:"offer" envconfig:"OFFER_URL"`
	Payment   string `yaml:"payment" envconfig:"PAYMENT_URL"`
	Materials string `yaml:"materials" envconfig:"MATERIALS_URL"`
}

// DatabaseConfig turns on the Postgres intake journal.
type DatabaseConfig struct {
	Enabled             bool `yaml:"enabled" envconfig:"DB_ENABLED"`
	coredatabase.Config `yaml:",inline"`
}

// SessionsConfig tunes the in-memory session store.
type SessionsConfig struct {
	Stripes int `yaml:"stripes" envconfig:"SESSION_STRIPES"`
}

// Config is the full bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Links    LinksConfig    `yaml:"links"`
	Database DatabaseConfig `yaml:"database"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// DatabaseOptions returns the database settings, or nil when the journal is off.
func (c *Config) DatabaseOptions() *coredatabase.Config {
	if !c.Database.Enabled {
		return nil
	}
	db := c.Database.Config
	return &db
}

// ContentLinks converts the configured URLs for the content catalog.
func (c *Config) ContentLinks() content.Links {
	return content.Links{
		Privacy:   c.Links.Privacy,
		Consent:   c.Links.Consent,
		Offer:     c.Links.Offer,
		Payment:   c.Links.Payment,
		Materials: c.Links.Materials,
	}
}

// LoadConfig reads path (optional), .env and the environment, then validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Sessions.Stripes < 0 {
		return fmt.Errorf("sessions.stripes must be >= 0")
	}
	if c.Database.Enabled && strings.TrimSpace(c.Database.Name) == "" {
		return fmt.Errorf("database.name is required when database.enabled is true (DB_NAME)")
	}
	return nil
}
