package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const FileName = "saltseed.config.json"

type Config struct {
	Version   string   `json:"version" mapstructure:"version"`
	OutputDir string   `json:"output_dir" mapstructure:"output_dir"`
	Count     int      `json:"count" mapstructure:"count"`
	Seed      uint64   `json:"seed" mapstructure:"seed"`
	Dialect   string   `json:"dialect" mapstructure:"dialect"`
	RootDir   string   `json:"root_dir" mapstructure:"root_dir"` // checkout holding code/apps and code/api
	Database  Database `json:"database" mapstructure:"database"`
	Emails    Emails   `json:"emails" mapstructure:"emails"`
	Company   Company  `json:"company" mapstructure:"company"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type Emails struct {
	OutputDir string `json:"output_dir,omitempty" mapstructure:"output_dir"`
	Count     int    `json:"count,omitempty" mapstructure:"count"`
}

// Company is the issuing company written to app_company and copied into
// every generated invoice.
type Company struct {
	Name         string `json:"name" mapstructure:"name"`
	Code         string `json:"code" mapstructure:"code"`
	Address      string `json:"address" mapstructure:"address"`
	City         string `json:"city" mapstructure:"city"`
	Province     string `json:"province" mapstructure:"province"`
	Zip          string `json:"zip" mapstructure:"zip"`
	Country      string `json:"country" mapstructure:"country"`
	Phone        string `json:"phone" mapstructure:"phone"`
	Email        string `json:"email" mapstructure:"email"`
	Website      string `json:"website" mapstructure:"website"`
	IBAN         string `json:"iban" mapstructure:"iban"`
	Swift        string `json:"swift" mapstructure:"swift"`
	FiscalRegime string `json:"fiscal_regime" mapstructure:"fiscal_regime"`
	ActivityCode string `json:"activity_code" mapstructure:"activity_code"`
	Notes        string `json:"notes" mapstructure:"notes"`
}

var (
	SupportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	SupportedDialects  = []string{"mysql", "sqlite", "postgres"}
)

func DefaultCompany() Company {
	return Company{
		Name:         "SaltOS Solutions SL",
		Code:         "B12345678",
		Address:      "Calle Ficticia 123, 3ºA",
		City:         "Barcelona",
		Province:     "Barcelona",
		Zip:          "08001",
		Country:      "Spain",
		Phone:        "+34 933 123 456",
		Email:        "info@saltos.org",
		Website:      "https://www.saltos.org",
		IBAN:         "ES76 1234 5678 9101 2345 6789",
		Swift:        "BESMESMMXXX",
		FiscalRegime: "RE - Régimen General",
		ActivityCode: "8299",
		Notes:        "Entidad acogida al régimen general del IVA",
	}
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.OutputDir == "" {
		c.OutputDir = "sample"
	}
	if c.Count == 0 {
		c.Count = 100
	}
	if c.Dialect == "" {
		c.Dialect = "mysql"
	}
	if c.RootDir == "" {
		c.RootDir = "."
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "sqlite"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Emails.OutputDir == "" {
		c.Emails.OutputDir = "emails_gzip"
	}
	if c.Emails.Count == 0 {
		c.Emails.Count = 100
	}
	if c.Company.Name == "" {
		c.Company = DefaultCompany()
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	if !contains(SupportedProviders, c.Database.Provider) {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, SupportedProviders)
	}
	if !contains(SupportedDialects, c.Dialect) {
		return fmt.Errorf("unsupported dialect: %s. Supported dialects: %v", c.Dialect, SupportedDialects)
	}
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.Emails.Count <= 0 {
		return fmt.Errorf("emails.count must be positive, got %d", c.Emails.Count)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	return nil
}

// DialectFor maps a database provider onto the SQL dialect its fixtures
// should be rendered in.
func DialectFor(provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return "mysql"
	}
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.OutputDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// AppsDir returns the directory holding one sub-directory per app group.
func (c *Config) AppsDir() string {
	return filepath.Join(c.RootDir, "code", "apps")
}

// APIDir returns the directory whose locale/ holds the generic messages.
func (c *Config) APIDir() string {
	return filepath.Join(c.RootDir, "code", "api")
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// InitializeProject writes a default config for provider into the current
// directory. It refuses to overwrite an existing one.
func InitializeProject(provider string) error {
	if IsInitialized() {
		return fmt.Errorf("%s already exists", FileName)
	}

	cfg := DefaultConfig()
	if provider != "" {
		cfg.Database.Provider = provider
		cfg.Dialect = DialectFor(provider)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(FileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}

	return cfg.EnsureDirectories()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
