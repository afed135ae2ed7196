package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/SscSPs/stock_exchange_app/internal/dto"
	"github.com/SscSPs/stock_exchange_app/internal/platform/config"
	"github.com/SscSPs/stock_exchange_app/internal/platform/i18n"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	authRealm          = `Basic realm="stock-exchange"`
	msgUnauthorized    = "error.unauthorized"
	msgAccessDenied    = "error.access.denied"
	dummyPasswordInput = "timing-equalizer"
)

type credential struct {
	passwordHash []byte
	roles        []string
}

// BasicAuthenticator checks HTTP Basic credentials against the static users.
type BasicAuthenticator struct {
	users     map[string]credential
	dummyHash []byte
	formatter i18n.Formatter
}

// NewBasicAuthenticator hashes the configured passwords with bcrypt at the given cost.
func NewBasicAuthenticator(users config.UsersConfig, formatter i18n.Formatter, cost int) (*BasicAuthenticator, error) {
	a := &BasicAuthenticator{
		users:     map[string]credential{},
		formatter: formatter,
	}
	for _, u := range []config.UserConfig{users.Admin, users.User} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password of %s: %w", u.Username, err)
		}
		a.users[u.Username] = credential{passwordHash: hash, roles: u.Roles}
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPasswordInput), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash dummy password: %w", err)
	}
	a.dummyHash = dummy
	return a, nil
}

// Authenticate creates a Gin middleware handler that requires valid Basic credentials.
func (a *BasicAuthenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			logger.Warn("Basic credentials missing")
			a.unauthorized(c)
			return
		}

		cred, known := a.users[username]
		hash := cred.passwordHash
		if !known {
			// compare anyway so unknown users cost the same as wrong passwords
			hash = a.dummyHash
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !known {
			logger.Warn("Invalid credentials", slog.String("username", username))
			a.unauthorized(c)
			return
		}

		enrichedLogger := logger.With(slog.String("username", username))
		ctx := context.WithValue(c.Request.Context(), usernameKey, username)
		ctx = context.WithValue(ctx, rolesKey, cred.roles)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Set(string(usernameKey), username)
		c.Set(string(rolesKey), cred.roles)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

// AuthorizeAPI grants reads to USER or ADMIN and every other method to ADMIN only.
func (a *BasicAuthenticator) AuthorizeAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		required := []string{config.RoleAdmin}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			required = []string{config.RoleUser, config.RoleAdmin}
		}

		roles, _ := c.Request.Context().Value(rolesKey).([]string)
		for _, role := range roles {
			if slices.Contains(required, role) {
				c.Next()
				return
			}
		}

		GetLoggerFromCtx(c.Request.Context()).Warn("Access denied",
			slog.Any("roles", roles),
			slog.Any("required", required))
		c.AbortWithStatusJSON(http.StatusForbidden, dto.AuthErrorResponse{
			Error: a.formatter.Format(GetLocaleFromCtx(c.Request.Context()), msgAccessDenied),
		})
	}
}

func (a *BasicAuthenticator) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", authRealm)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.AuthErrorResponse{
		Error: a.formatter.Format(GetLocaleFromCtx(c.Request.Context()), msgUnauthorized),
	})
}
