// Package config loads clinicdash settings from defaults, an optional config
// file, a .env file, CLINICDASH_* environment variables and CLI flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CLINICDASH_API_GRAPHQL_URL.
const EnvPrefix = "CLINICDASH"

// Config is the full clinicdash configuration.
type Config struct {
	API  APIConfig  `mapstructure:"api"`
	UI   UIConfig   `mapstructure:"ui"`
	Log  LogConfig  `mapstructure:"log"`
	OTel OTelConfig `mapstructure:"otel"`
}

// APIConfig locates the remote services.
type APIConfig struct {
	PatientsBaseURL   string        `mapstructure:"patients_base_url"`
	DoctorInfoBaseURL string        `mapstructure:"doctor_info_base_url"`
	GraphQLURL        string        `mapstructure:"graphql_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// UIConfig toggles behaviours that are off by default: the list shows no
// loading indicator, swallows fetch errors and re-fetches details on every
// activation.
type UIConfig struct {
	Greeting       string `mapstructure:"greeting"`
	ShowLoading    bool   `mapstructure:"show_loading"`
	ShowErrors     bool   `mapstructure:"show_errors"`
	MemoizeDetails bool   `mapstructure:"memoize_details"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `mapstructure:"file"` // empty = <user cache dir>/clinicdash/clinicdash.log
	Level string `mapstructure:"level"`
}

// OTelConfig configures trace export; an empty Endpoint disables it.
type OTelConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// New returns a viper instance with defaults and environment binding set up.
// Callers may bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("api.patients_base_url", "http://localhost:8080")
	v.SetDefault("api.doctor_info_base_url", "http://localhost:8080")
	v.SetDefault("api.graphql_url", "http://localhost:8080/graphql")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("ui.greeting", "")
	v.SetDefault("ui.show_loading", false)
	v.SetDefault("ui.show_errors", false)
	v.SetDefault("ui.memoize_details", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service_name", "clinicdash")
	v.SetDefault("otel.insecure", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configFile (if non-empty) into v, unmarshals and validates.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks endpoint URLs, the request timeout and the log level.
func (c *Config) Validate() error {
	endpoints := []struct {
		key, value string
	}{
		{"api.patients_base_url", c.API.PatientsBaseURL},
		{"api.doctor_info_base_url", c.API.DoctorInfoBaseURL},
		{"api.graphql_url", c.API.GraphQLURL},
	}
	for _, e := range endpoints {
		if err := validateHTTPURL(e.value); err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("must be set")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
