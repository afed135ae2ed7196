package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/dto"
	"github.com/SscSPs/stock_exchange_app/internal/middleware"
	"github.com/SscSPs/stock_exchange_app/internal/platform/i18n"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// errorResponder writes the {timestamp, message} envelope for failed calls.
type errorResponder struct {
	formatter i18n.Formatter
	now       func() time.Time
}

func newErrorResponder(formatter i18n.Formatter) errorResponder {
	return errorResponder{formatter: formatter, now: time.Now}
}

// respondError maps a failure kind to its HTTP status and a localized message.
func (r errorResponder) respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	tag := middleware.GetLocaleFromCtx(ctx)
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	var appErr *apperrors.AppError
	var msg string
	switch {
	case kind == apperrors.KindInternal || kind == apperrors.KindTimeout:
		cause := err
		if errors.As(err, &appErr) && appErr.Err != nil {
			cause = appErr.Err
		}
		msg = r.formatter.Format(tag, i18n.FallbackCode) + ": " + cause.Error()
		logger.Error("Request failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
	case errors.As(err, &appErr) && appErr.MessageCode != "":
		msg = r.formatter.Format(tag, appErr.MessageCode, appErr.Args...)
		logger.Warn("Request rejected", slog.String("kind", string(kind)), slog.String("error", err.Error()))
	default:
		msg = err.Error()
		logger.Warn("Request rejected", slog.String("kind", string(kind)), slog.String("error", err.Error()))
	}

	c.JSON(status, dto.ErrorResponse{Timestamp: r.now(), Message: msg})
}

// respondBindError reports a request that failed decoding or validation. Field violations
// are reported as an array of localized messages.
func (r errorResponder) respondBindError(c *gin.Context, err error) {
	tag := middleware.GetLocaleFromCtx(c.Request.Context())
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Timestamp: r.now(),
			Message:   r.formatter.Format(tag, dto.MsgMalformedRequest),
		})
		return
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, r.formatter.Format(tag, dto.ValidationMessageCode(fe)))
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Timestamp: r.now(), Message: messages})
}

// respondMalformed reports an unparsable path or query parameter.
func (r errorResponder) respondMalformed(c *gin.Context, param string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid parameter",
		slog.String("param", param),
		slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Timestamp: r.now(),
		Message:   r.formatter.Format(middleware.GetLocaleFromCtx(c.Request.Context()), dto.MsgMalformedRequest),
	})
}
