package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPAddr        string `mapstructure:"http_addr"`
	DatabaseURL     string `mapstructure:"database_url"`
	InternalToken   string `mapstructure:"internal_token"`
	CORSAllowOrigin string `mapstructure:"cors_allow_origin"`
	LogLevel        string `mapstructure:"log_level"`
	FontDir         string `mapstructure:"font_dir"`

	// AdminPasswordHash is a bcrypt hash; see cmd/hashpw.
	AdminPasswordHash string `mapstructure:"admin_password_hash"`

	Session  SessionConfig   `mapstructure:"session"`
	Catalog  CatalogConfig   `mapstructure:"catalog"`
	Quote    QuoteConfig     `mapstructure:"quote"`
	Company  CompanyConfig   `mapstructure:"company"`
	Accounts []AccountConfig `mapstructure:"accounts"`
}

type SessionConfig struct {
	Secret       string        `mapstructure:"secret"`
	TTL          time.Duration `mapstructure:"ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

type CatalogConfig struct {
	Mode       string        `mapstructure:"mode"`
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	LocalDelay time.Duration `mapstructure:"local_delay"`
}

type QuoteConfig struct {
	ValidityDays int `mapstructure:"validity_days"`
}

// CompanyConfig overrides the built-in company header. Empty fields keep the defaults.
type CompanyConfig struct {
	Name         string `mapstructure:"name"`
	Contact      string `mapstructure:"contact"`
	Conditions   string `mapstructure:"conditions"`
	ServiceTerms string `mapstructure:"service_terms"`
}

type AccountConfig struct {
	Username     string          `mapstructure:"username"`
	PasswordHash string          `mapstructure:"password_hash"`
	Estimator    EstimatorConfig `mapstructure:"estimator"`
}

type EstimatorConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
	Phone string `mapstructure:"phone"`
}

// Load reads configuration from the optional TOML file named by PREMA_CONFIG
// and the environment. Nested keys map to env vars with "." replaced by "_",
// so catalog.url is CATALOG_URL.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("internal_token", "")
	v.SetDefault("cors_allow_origin", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("font_dir", "")
	v.SetDefault("admin_password_hash", "")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("catalog.mode", "remote")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout", "15s")
	v.SetDefault("catalog.local_delay", "500ms")
	v.SetDefault("quote.validity_days", 15)
	v.SetDefault("company.name", "")
	v.SetDefault("company.contact", "")
	v.SetDefault("company.conditions", "")
	v.SetDefault("company.service_terms", "")

	v.SetConfigType("toml")
	if path := os.Getenv("PREMA_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.AdminPasswordHash != "" {
		c.Accounts = append(c.Accounts, AccountConfig{
			Username:     "admin",
			PasswordHash: c.AdminPasswordHash,
			Estimator:    EstimatorConfig{Name: "Administrador"},
		})
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func MustLoad() Config {
	c, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Session.Secret) == "" {
		errs = append(errs, errors.New("missing env SESSION_SECRET"))
	}
	if len(c.Accounts) == 0 {
		errs = append(errs, errors.New("no accounts configured: set ADMIN_PASSWORD_HASH or [[accounts]]"))
	}
	for _, a := range c.Accounts {
		if _, err := bcrypt.Cost([]byte(a.PasswordHash)); err != nil {
			errs = append(errs, fmt.Errorf("account %q: password_hash is not a bcrypt hash: %w", a.Username, err))
		}
	}
	switch c.Catalog.Mode {
	case "remote", "local":
	default:
		errs = append(errs, fmt.Errorf("invalid CATALOG_MODE %q: want remote or local", c.Catalog.Mode))
	}
	if c.Quote.ValidityDays < 0 {
		errs = append(errs, errors.New("QUOTE_VALIDITY_DAYS must not be negative"))
	}
	return errors.Join(errs...)
}
