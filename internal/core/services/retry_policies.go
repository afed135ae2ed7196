package services

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/core/retry"
	"github.com/SscSPs/stock_exchange_app/internal/platform/config"
)

// RetryPolicies are the retry budgets the services run their units of work under.
type RetryPolicies struct {
	Version retry.Policy
	Unique  retry.Policy
}

// RetryObserver is notified of retries and exhausted budgets, e.g. to export metrics.
type RetryObserver interface {
	ObserveRetry(policy string)
	ObserveExhausted(policy string)
}

// DefaultRetryPolicies returns the stock budgets: 3 attempts on stale versions, 2 on unique violations, 1 s apart.
func DefaultRetryPolicies() RetryPolicies {
	return RetryPolicies{
		Version: retry.VersionPolicy(),
		Unique:  retry.UniquePolicy(),
	}
}

// RetryPoliciesFromConfig builds the policies from the retry settings.
func RetryPoliciesFromConfig(cfg config.RetryConfig) RetryPolicies {
	p := DefaultRetryPolicies()

	var backoff retry.Backoff = retry.FixedBackoff(cfg.Delay)
	if cfg.Backoff == config.BackoffExponential {
		backoff = retry.ExponentialBackoff{Base: cfg.Delay, Max: cfg.MaxDelay}
	}
	p.Version.Backoff = backoff
	p.Unique.Backoff = backoff
	if cfg.VersionMaxAttempts > 0 {
		p.Version.MaxAttempts = cfg.VersionMaxAttempts
	}
	if cfg.UniqueMaxAttempts > 0 {
		p.Unique.MaxAttempts = cfg.UniqueMaxAttempts
	}
	return p
}

// Observed returns a copy of the policies reporting to o.
func (p RetryPolicies) Observed(o RetryObserver) RetryPolicies {
	if o == nil {
		return p
	}
	observe := func(policy retry.Policy) retry.Policy {
		policy.OnRetry = func(context.Context, int, error) { o.ObserveRetry(policy.Name) }
		policy.OnExhausted = func(context.Context, int, error) { o.ObserveExhausted(policy.Name) }
		return policy
	}
	return RetryPolicies{
		Version: observe(p.Version),
		Unique:  observe(p.Unique),
	}
}
