package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Role names granted to the static users.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Storage drivers backing the catalog.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Backoff strategies between retry attempts.
const (
	BackoffFixed       = "fixed"
	BackoffExponential = "exponential"
)

// UserConfig is one static credential pair.
type UserConfig struct {
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	Roles    []string `mapstructure:"roles"`
}

// UsersConfig holds the two static users, read under the "users" prefix.
type UsersConfig struct {
	Admin UserConfig `mapstructure:"admin"`
	User  UserConfig `mapstructure:"user"`
}

// RetryConfig tunes the optimistic retry budgets.
type RetryConfig struct {
	Backoff            string
	Delay              time.Duration
	MaxDelay           time.Duration
	VersionMaxAttempts int
	UniqueMaxAttempts  int
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	DBMaxConns     int32

	Users UsersConfig
	Retry RetryConfig

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-S"; empty disables limiting
	RateLimitRedisURL  string
	CORSAllowedOrigins []string
	DefaultLocale      string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_MAX_CONNS", 0)

	v.SetDefault("users.admin.username", "admin")
	v.SetDefault("users.admin.password", "admin")
	v.SetDefault("users.admin.roles", []string{RoleAdmin})
	v.SetDefault("users.user.username", "user")
	v.SetDefault("users.user.password", "user")
	v.SetDefault("users.user.roles", []string{RoleUser})

	v.SetDefault("RETRY_BACKOFF", BackoffFixed)
	v.SetDefault("RETRY_DELAY", "1s")
	v.SetDefault("RETRY_MAX_DELAY", "5s")
	v.SetDefault("RETRY_VERSION_MAX_ATTEMPTS", 3)
	v.SetDefault("RETRY_UNIQUE_MAX_ATTEMPTS", 2)

	v.SetDefault("RATE_LIMIT", "")
	v.SetDefault("RATE_LIMIT_REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("DEFAULT_LOCALE", "en")
}

// LoadConfig loads configuration from environment variables, a .env file if present,
// and the file named by CONFIG_FILE if set.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		DBMaxConns:        v.GetInt32("DB_MAX_CONNS"),
		RateLimit:         v.GetString("RATE_LIMIT"),
		RateLimitRedisURL: v.GetString("RATE_LIMIT_REDIS_URL"),
		DefaultLocale:     v.GetString("DEFAULT_LOCALE"),
		Retry: RetryConfig{
			Backoff:            strings.ToLower(v.GetString("RETRY_BACKOFF")),
			Delay:              v.GetDuration("RETRY_DELAY"),
			MaxDelay:           v.GetDuration("RETRY_MAX_DELAY"),
			VersionMaxAttempts: v.GetInt("RETRY_VERSION_MAX_ATTEMPTS"),
			UniqueMaxAttempts:  v.GetInt("RETRY_UNIQUE_MAX_ATTEMPTS"),
		},
	}

	cfg.Users = UsersConfig{
		Admin: userFrom(v, "users.admin"),
		User:  userFrom(v, "users.user"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// userFrom reads one credential pair. Roles may come as a list (config file) or a
// comma separated string (environment).
func userFrom(v *viper.Viper, prefix string) UserConfig {
	u := UserConfig{
		Username: v.GetString(prefix + ".username"),
		Password: v.GetString(prefix + ".password"),
	}
	for _, role := range v.GetStringSlice(prefix + ".roles") {
		for _, r := range strings.Split(role, ",") {
			if r = strings.ToUpper(strings.TrimSpace(r)); r != "" {
				u.Roles = append(u.Roles, r)
			}
		}
	}
	return u
}

// Validate fails fast on settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.Retry.Backoff {
	case BackoffFixed, BackoffExponential:
	default:
		return fmt.Errorf("unknown RETRY_BACKOFF %q", c.Retry.Backoff)
	}
	if c.Retry.Delay < 0 || c.Retry.MaxDelay < 0 {
		return fmt.Errorf("retry delays must not be negative")
	}
	if c.Retry.VersionMaxAttempts < 1 || c.Retry.UniqueMaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}

	for name, u := range map[string]UserConfig{"admin": c.Users.Admin, "user": c.Users.User} {
		if u.Username == "" || u.Password == "" {
			return fmt.Errorf("users.%s: username and password are required", name)
		}
		if len(u.Roles) == 0 {
			return fmt.Errorf("users.%s: at least one role is required", name)
		}
		for _, role := range u.Roles {
			if role != RoleUser && role != RoleAdmin {
				return fmt.Errorf("users.%s: unknown role %q", name, role)
			}
		}
	}
	if c.Users.Admin.Username == c.Users.User.Username {
		return fmt.Errorf("users.admin and users.user must have distinct usernames")
	}
	return nil
}
