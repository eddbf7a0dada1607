package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Environment   string              `mapstructure:"environment"`
	Platform      PlatformConfig      `mapstructure:"platform"`
	Ingest        IngestConfig        `mapstructure:"ingest"`
	Seed          SeedConfig          `mapstructure:"seed"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// PlatformConfig points the seeder at the per-service base URLs of the target
// environment plus the admin credentials every privileged call runs under.
type PlatformConfig struct {
	ArrangementsURL string `mapstructure:"arrangements_url"`
	AccessURL       string `mapstructure:"access_url"`
	UsersURL        string `mapstructure:"users_url"`
	PocketsURL      string `mapstructure:"pockets_url"`
	EngagementURL   string `mapstructure:"engagement_url"`

	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`

	// RootLegalEntityID is the external ID of the root legal entity all
	// seeded legal entities hang under.
	RootLegalEntityID string `mapstructure:"root_legal_entity_id"`
}

// IngestConfig holds the feature toggles; each maps to one optional ingestion
// stage of the run.
type IngestConfig struct {
	Entitlements   bool `mapstructure:"entitlements"`
	Transactions   bool `mapstructure:"transactions"`
	Contacts       bool `mapstructure:"contacts"`
	Payments       bool `mapstructure:"payments"`
	Conversations  bool `mapstructure:"conversations"`
	Pockets        bool `mapstructure:"pockets"`
	BalanceHistory bool `mapstructure:"balance_history"`
}

// Pocket provisioning modes: one parent arrangement shared by all pockets of
// a legal entity, or one arrangement per pocket.
const (
	PocketsModeOneToMany = "one-to-many"
	PocketsModeOneToOne  = "one-to-one"
)

type SeedConfig struct {
	UsersJSON                   string `mapstructure:"users_json"`
	UsersWithoutPermissionsJSON string `mapstructure:"users_without_permissions_json"`

	RandomCurrencyArrangements int `mapstructure:"random_currency_arrangements"`
	EurCurrencyArrangements    int `mapstructure:"eur_currency_arrangements"`
	UsdCurrencyArrangements    int `mapstructure:"usd_currency_arrangements"`

	PocketsMode string `mapstructure:"pockets_mode"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds the configuration purely from environment
// variables, used for containerized runs where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Platform: PlatformConfig{
			ArrangementsURL:   getEnv("PLATFORM_ARRANGEMENTS_URL", ""),
			AccessURL:         getEnv("PLATFORM_ACCESS_URL", ""),
			UsersURL:          getEnv("PLATFORM_USERS_URL", ""),
			PocketsURL:        getEnv("PLATFORM_POCKETS_URL", ""),
			EngagementURL:     getEnv("PLATFORM_ENGAGEMENT_URL", ""),
			AdminUsername:     getEnv("PLATFORM_ADMIN_USERNAME", "admin"),
			AdminPassword:     getEnv("PLATFORM_ADMIN_PASSWORD", ""),
			RootLegalEntityID: getEnv("PLATFORM_ROOT_LEGAL_ENTITY_ID", "C000000"),
		},
		Ingest: IngestConfig{
			Entitlements:   getEnvAsBool("INGEST_ENTITLEMENTS", true),
			Transactions:   getEnvAsBool("INGEST_TRANSACTIONS", false),
			Contacts:       getEnvAsBool("INGEST_CONTACTS", false),
			Payments:       getEnvAsBool("INGEST_PAYMENTS", false),
			Conversations:  getEnvAsBool("INGEST_CONVERSATIONS", false),
			Pockets:        getEnvAsBool("INGEST_POCKETS", false),
			BalanceHistory: getEnvAsBool("INGEST_BALANCE_HISTORY", false),
		},
		Seed: SeedConfig{
			UsersJSON:                   getEnv("SEED_USERS_JSON", "./data/users.json"),
			UsersWithoutPermissionsJSON: getEnv("SEED_USERS_WITHOUT_PERMISSIONS_JSON", "./data/users-without-permissions.json"),
			RandomCurrencyArrangements:  getEnvAsInt("SEED_RANDOM_CURRENCY_ARRANGEMENTS", 2),
			EurCurrencyArrangements:     getEnvAsInt("SEED_EUR_CURRENCY_ARRANGEMENTS", 1),
			UsdCurrencyArrangements:     getEnvAsInt("SEED_USD_CURRENCY_ARRANGEMENTS", 1),
			PocketsMode:                 getEnv("SEED_POCKETS_MODE", PocketsModeOneToMany),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Platform.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("platform config: %v", err))
	}

	if err := c.Seed.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("seed config: %v", err))
	}

	if len(errs) > 0 {
		return NewValidationError(strings.Join(errs, "; "), ErrCodeConfigInvalid)
	}

	return nil
}

func (c *PlatformConfig) Validate() error {
	urls := map[string]string{
		"arrangements_url": c.ArrangementsURL,
		"access_url":       c.AccessURL,
		"users_url":        c.UsersURL,
	}
	for name, raw := range urls {
		if raw == "" {
			return fmt.Errorf("%s is required", name)
		}
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid %s %s: %w", name, raw, err)
		}
	}

	if c.AdminUsername == "" || c.AdminPassword == "" {
		return errors.New("admin credentials are required")
	}

	if c.RootLegalEntityID == "" {
		return errors.New("root_legal_entity_id is required")
	}

	return nil
}

func (c *SeedConfig) Validate() error {
	if c.UsersJSON == "" {
		return errors.New("users_json is required")
	}

	if c.RandomCurrencyArrangements < 1 || c.EurCurrencyArrangements < 1 || c.UsdCurrencyArrangements < 1 {
		return errors.New("every currency arrangement batch needs at least one arrangement")
	}

	switch c.PocketsMode {
	case "", PocketsModeOneToMany, PocketsModeOneToOne:
	default:
		return fmt.Errorf("unknown pockets_mode %q", c.PocketsMode)
	}

	return nil
}
