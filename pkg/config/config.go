package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultAPIBaseURL = "https://api.cloudflare.com/client/v4"

// ErrMissingCredentials is returned when one of the required Cloudflare
// settings has not been supplied.
var ErrMissingCredentials = errors.New("missing variables")

// MissingVariablesError names the unset environment variables.
type MissingVariablesError struct {
	Variables []string
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingCredentials, strings.Join(e.Variables, ", "))
}

func (e *MissingVariablesError) Is(target error) bool {
	return target == ErrMissingCredentials
}

// CloudflareConfig holds the identifiers needed to address one Pages project.
type CloudflareConfig struct {
	AccountID   string `mapstructure:"account_id"`
	ProjectName string `mapstructure:"project_name"`
	AuthToken   string `mapstructure:"auth_token"`
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	PerPage        int           `mapstructure:"per_page"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type CleanupConfig struct {
	DeleteInterval time.Duration `mapstructure:"delete_interval"`
	DryRun         bool          `mapstructure:"dry_run"`
}

type JanitorConfig struct {
	Cloudflare CloudflareConfig `mapstructure:"cloudflare"`
	API        APIConfig        `mapstructure:"api"`
	Cleanup    CleanupConfig    `mapstructure:"cleanup"`
	LogLevel   string           `mapstructure:"log_level"`
	LogFormat  string           `mapstructure:"log_format"`
}

func DefaultConfig() *JanitorConfig {
	return &JanitorConfig{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			PerPage: 25,
		},
		Cleanup: CleanupConfig{
			DeleteInterval: time.Second,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// requiredEnv maps the mandatory keys to the variables operators set in CI.
var requiredEnv = []struct {
	key string
	env string
}{
	{"cloudflare.account_id", "CF_ACCOUNT_ID"},
	{"cloudflare.project_name", "CF_PROJECT_NAME"},
	{"cloudflare.auth_token", "CF_AUTH_TOKEN"},
}

func LoadConfig() (*JanitorConfig, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (*JanitorConfig, error) {
	config := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.pages-janitor/")

	v.SetEnvPrefix("PAGES_JANITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, r := range requiredEnv {
		if err := v.BindEnv(r.key, r.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", r.env, err)
		}
	}

	// Cloudflare credentials have no usable default
	v.SetDefault("cloudflare.account_id", "")
	v.SetDefault("cloudflare.project_name", "")
	v.SetDefault("cloudflare.auth_token", "")

	// API configuration defaults
	v.SetDefault("api.base_url", config.API.BaseURL)
	v.SetDefault("api.per_page", config.API.PerPage)
	v.SetDefault("api.request_timeout", config.API.RequestTimeout)

	// Cleanup configuration defaults
	v.SetDefault("cleanup.delete_interval", config.Cleanup.DeleteInterval)
	v.SetDefault("cleanup.dry_run", config.Cleanup.DryRun)
	v.SetDefault("log_level", config.LogLevel)
	v.SetDefault("log_format", config.LogFormat)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// MissingVariables lists the environment variables whose values are empty.
func (c *JanitorConfig) MissingVariables() []string {
	values := map[string]string{
		"cloudflare.account_id":   c.Cloudflare.AccountID,
		"cloudflare.project_name": c.Cloudflare.ProjectName,
		"cloudflare.auth_token":   c.Cloudflare.AuthToken,
	}
	var missing []string
	for _, r := range requiredEnv {
		if strings.TrimSpace(values[r.key]) == "" {
			missing = append(missing, r.env)
		}
	}
	return missing
}

func validateConfig(config *JanitorConfig) error {
	if missing := config.MissingVariables(); len(missing) > 0 {
		return &MissingVariablesError{Variables: missing}
	}

	if config.API.BaseURL == "" {
		return fmt.Errorf("invalid configuration: the API base URL cannot be empty")
	}

	if config.API.PerPage <= 0 || config.API.PerPage > 100 {
		return fmt.Errorf("invalid configuration: api.per_page must be between 1 and 100")
	}

	if config.API.RequestTimeout < 0 {
		return fmt.Errorf("invalid configuration: the request timeout cannot be negative")
	}

	if config.Cleanup.DeleteInterval < 0 {
		return fmt.Errorf("invalid configuration: the delete interval cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("invalid configuration: invalid log level: %s", config.LogLevel)
	}

	validLogFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validLogFormats[config.LogFormat] {
		return fmt.Errorf("invalid configuration: invalid log format: %s", config.LogFormat)
	}

	return nil
}
