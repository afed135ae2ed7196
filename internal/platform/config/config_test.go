package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, UserConfig{Username: "admin", Password: "admin", Roles: []string{RoleAdmin}}, cfg.Users.Admin)
	assert.Equal(t, UserConfig{Username: "user", Password: "user", Roles: []string{RoleUser}}, cfg.Users.User)
	assert.Equal(t, RetryConfig{
		Backoff:            BackoffFixed,
		Delay:              time.Second,
		MaxDelay:           5 * time.Second,
		VersionMaxAttempts: 3,
		UniqueMaxAttempts:  2,
	}, cfg.Retry)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, "en", cfg.DefaultLocale)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Memory")
	v.Set("users.admin.username", "root")
	v.Set("users.admin.password", "s3cret")
	v.Set("users.admin.roles", "admin, user")
	v.Set("RETRY_BACKOFF", "exponential")
	v.Set("RETRY_DELAY", "250ms")
	v.Set("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "root", cfg.Users.Admin.Username)
	assert.Equal(t, []string{RoleAdmin, RoleUser}, cfg.Users.Admin.Roles)
	assert.Equal(t, BackoffExponential, cfg.Retry.Backoff)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.Delay)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown storage driver", "STORAGE_DRIVER", "mongo"},
		{"unknown backoff", "RETRY_BACKOFF", "linear"},
		{"zero attempts", "RETRY_VERSION_MAX_ATTEMPTS", 0},
		{"empty password", "users.user.password", ""},
		{"unknown role", "users.user.roles", "GUEST"},
		{"shared username", "users.user.username", "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := FromViper(v)
			assert.Error(t, err)
		})
	}
}
