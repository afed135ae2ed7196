package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_exchange_app/internal/core/retry"
	"github.com/SscSPs/stock_exchange_app/internal/middleware"
)

const msgConcurrentModification = "error.concurrent.modification"

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RunInTx runs unit in a fresh transaction per attempt, retrying per policy.
func (s *BaseService) RunInTx(ctx context.Context, policy retry.Policy, unit retry.Unit) error {
	p := policy
	p.OnRetry = func(ctx context.Context, attempt int, err error) {
		s.LogWarn(ctx, err, "Retrying unit of work",
			slog.String("policy", policy.Name),
			slog.Int("attempt", attempt))
		if policy.OnRetry != nil {
			policy.OnRetry(ctx, attempt, err)
		}
	}
	p.OnExhausted = func(ctx context.Context, attempts int, err error) {
		s.LogWarn(ctx, err, "Retry budget exhausted",
			slog.String("policy", policy.Name),
			slog.Int("attempts", attempts))
		if policy.OnExhausted != nil {
			policy.OnExhausted(ctx, attempts, err)
		}
	}
	return retry.Do(ctx, p, func(ctx context.Context) error {
		return s.TxManager.WithTransaction(ctx, unit)
	})
}

// SurfaceError turns a failure that escaped a unit of work into the kind reported to callers.
// Retryable store kinds become CONFLICT; anything unclassified becomes INTERNAL.
func (s *BaseService) SurfaceError(ctx context.Context, err error, msg string, keyvals ...any) error {
	var exhausted *retry.ExhaustedError
	switch kind := apperrors.KindOf(err); {
	case err == nil:
		return nil
	case errors.As(err, &exhausted), kind == apperrors.KindStaleVersion, kind == apperrors.KindUniqueViolation:
		return apperrors.NewConflictError(msgConcurrentModification, err)
	case errors.Is(err, context.Canceled), kind == apperrors.KindTimeout:
		s.LogWarn(ctx, err, msg+": request abandoned", keyvals...)
		return err
	case kind == apperrors.KindInternal:
		s.LogError(ctx, err, msg, keyvals...)
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.MessageCode != "" {
			return err
		}
		return apperrors.NewInternalServerError(msg, err)
	default:
		return err
	}
}
