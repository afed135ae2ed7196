package middleware

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/platform/i18n"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const localeKey = contextKey("locale")

// LocaleMiddleware resolves the response language from Accept-Language and stores it in the request context.
func LocaleMiddleware(formatter i18n.Formatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := formatter.Match(c.GetHeader("Accept-Language"))
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), localeKey, tag))
		c.Next()
	}
}

// GetLocaleFromCtx returns the language resolved for the request, or language.Und when none was.
func GetLocaleFromCtx(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeKey).(language.Tag); ok {
		return tag
	}
	return language.Und
}
