package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrisonrobin/ticked/pkg/agenda"
	"github.com/harrisonrobin/ticked/pkg/auth"
	"github.com/harrisonrobin/ticked/pkg/ticktick"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "ticked"
	configFile = "config.yaml"
	envPrefix  = "TICKED"
)

// ErrNoCredentials is returned when no login fields are configured.
var ErrNoCredentials = errors.New("no login credentials configured")

type Config struct {
	// Login is sent verbatim as the sign-on body, e.g. username and password.
	// Keys and values keep the case and types written in the file.
	Login          map[string]any `mapstructure:"login"`
	API            API            `mapstructure:"api"`
	DefaultProject string         `mapstructure:"default_project"`
	Color          string         `mapstructure:"color"`
	// Timezone is an optional IANA zone name used instead of the system zone.
	Timezone string `mapstructure:"timezone"`
}

type API struct {
	BaseURL string `mapstructure:"base_url"`
}

// Credentials returns the sign-on body.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials(c.Login)
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

// Load reads the config file at path, or the default location when path is empty.
// A missing file at the default location is not an error; environment variables
// (TICKED_LOGIN_USERNAME, TICKED_API_BASE_URL, ...) override file values.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"api.base_url", "default_project", "color", "timezone"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	found := true
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		found = false
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// viper folds key case and stringifies values, so the login section is read as written.
	cfg.Login = map[string]any{}
	if found {
		login, err := readLogin(path)
		if err != nil {
			return nil, err
		}
		cfg.Login = login
	}
	overrideLogin(cfg.Login)
	return &cfg, nil
}

func readLogin(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var raw struct {
		Login map[string]any `yaml:"login"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode login section of %s: %w", path, err)
	}
	if raw.Login == nil {
		return map[string]any{}, nil
	}
	return raw.Login, nil
}

// overrideLogin applies TICKED_LOGIN_USERNAME and TICKED_LOGIN_PASSWORD. A file key
// that differs only in case (userName) is replaced rather than duplicated.
func overrideLogin(login map[string]any) {
	for _, field := range []string{"username", "password"} {
		val := os.Getenv(envPrefix + "_LOGIN_" + strings.ToUpper(field))
		if val == "" {
			continue
		}
		key := field
		for k := range login {
			if strings.EqualFold(k, field) {
				key = k
				break
			}
		}
		login[key] = val
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", ticktick.DefaultBaseURL)
	v.SetDefault("default_project", agenda.DefaultProject)
	v.SetDefault("color", "auto")
}

// Location returns the viewer zone: the configured Timezone, or time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks that the configuration can be used for a run.
func (c *Config) Validate() error {
	if len(c.Login) == 0 {
		return ErrNoCredentials
	}
	return nil
}
