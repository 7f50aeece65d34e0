package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerSettings struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseSettings struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type AuthSettings struct {
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
	CookieDomain   string        `yaml:"cookie_domain"`
}

type AllocationSettings struct {
	// LockParent makes hour checks take a row lock on the parent project or goal.
	LockParent bool `yaml:"lock_parent"`
}

type Settings struct {
	Server     ServerSettings     `yaml:"server"`
	Database   DatabaseSettings   `yaml:"database"`
	Auth       AuthSettings       `yaml:"auth"`
	Allocation AllocationSettings `yaml:"allocation"`
}

var Current = Defaults()

func Defaults() Settings {
	return Settings{
		Server: ServerSettings{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseSettings{
			DSN:          "chronos.db",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		Auth: AuthSettings{
			AccessTokenTTL: 30 * time.Minute,
		},
		Allocation: AllocationSettings{
			LockParent: true,
		},
	}
}

// LoadSettings reads the optional YAML file named by CONFIG_FILE and then
// applies environment overrides.
func LoadSettings() (Settings, error) {
	s := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return s, fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&s); err != nil {
			return s, fmt.Errorf("decode config file: %w", err)
		}
	}

	overrideFromEnv(&s)
	return s, nil
}

func overrideFromEnv(s *Settings) {
	if port := os.Getenv("PORT"); port != "" {
		s.Server.Port = port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		s.Server.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				s.Server.AllowedOrigins = append(s.Server.AllowedOrigins, o)
			}
		}
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		s.Database.DSN = dsn
	}
	if n, err := strconv.Atoi(os.Getenv("DB_MAX_OPEN_CONNS")); err == nil && n > 0 {
		s.Database.MaxOpenConns = n
	}
	if ttl, err := time.ParseDuration(os.Getenv("ACCESS_TOKEN_TTL")); err == nil && ttl > 0 {
		s.Auth.AccessTokenTTL = ttl
	}
	if domain := os.Getenv("COOKIE_DOMAIN"); domain != "" {
		s.Auth.CookieDomain = domain
	}
	if lock, err := strconv.ParseBool(os.Getenv("ALLOCATION_LOCK_PARENT")); err == nil {
		s.Allocation.LockParent = lock
	}
}
