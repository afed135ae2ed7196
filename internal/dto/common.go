package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the wire layout of stock timestamps (UTC).
const TimestampLayout = "2006-01-02 15:04:05"

// Money renders a monetary amount as a JSON number with exactly two fraction digits.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

// Timestamp renders an instant as "yyyy-MM-dd HH:mm:ss" in UTC.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	parsed, err := time.ParseInLocation(`"`+TimestampLayout+`"`, string(data), time.UTC)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying instant.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// ErrorResponse is the error envelope returned for every failed API call.
// Message is a string, or an array of strings for validation failures.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   any       `json:"message" swaggertype:"string"`
}

// AuthErrorResponse is returned by the authentication layer (401/403).
type AuthErrorResponse struct {
	Error string `json:"error"`
}
