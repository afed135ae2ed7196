package dto

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

const (
	// PriceIntegerDigits is the maximum number of integer digits of a price.
	PriceIntegerDigits = 15
	// PriceFractionDigits is the maximum number of fraction digits of a price.
	PriceFractionDigits = 2
)

var registerOnce sync.Once

// RegisterValidators installs the custom validation tags used by the request DTOs on gin's
// validator engine. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = registerOn(v)
	})
	return err
}

func registerOn(v *validator.Validate) error {
	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// decimals are validated through their string form; as structs the validator would descend into them
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_positive", decimalPositive); err != nil {
		return err
	}
	return v.RegisterValidation("decimal_digits", decimalDigits)
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	switch d := fl.Field().Interface().(type) {
	case string:
		parsed, err := decimal.NewFromString(d)
		return parsed, err == nil
	case decimal.Decimal:
		return d, true
	case *decimal.Decimal:
		if d == nil {
			return decimal.Decimal{}, false
		}
		return *d, true
	default:
		return decimal.Decimal{}, false
	}
}

func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.IsPositive()
}

func decimalDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && ValidPriceDigits(d)
}

// ValidPriceDigits reports whether d fits in PriceIntegerDigits integer digits and
// PriceFractionDigits fraction digits. Trailing fractional zeros are not counted.
func ValidPriceDigits(d decimal.Decimal) bool {
	if !d.Equal(d.Truncate(PriceFractionDigits)) {
		return false
	}
	limit := decimal.New(1, PriceIntegerDigits)
	return d.Abs().LessThan(limit)
}

// MsgMalformedRequest is the message code of a request body that could not be decoded.
const MsgMalformedRequest = "request.malformed"

// ValidationMessageCode maps a failed field constraint to its localizable message code.
func ValidationMessageCode(fe validator.FieldError) string {
	switch fe.Field() {
	case "name", "description":
		switch fe.Tag() {
		case "required", "notblank":
			return "stock." + fe.Field() + ".not-blank"
		case "max":
			return "stock." + fe.Field() + ".size"
		}
	case "currentPrice":
		switch fe.Tag() {
		case "required":
			return "stock.currentprice.not-null"
		case "decimal_positive":
			return "stock.currentprice.positive"
		case "decimal_digits":
			return "stock.currentprice.digits"
		}
	case "id":
		switch fe.Tag() {
		case "required":
			return "stock.id.not-null"
		case "gt":
			return "stock.id.positive"
		}
	}
	return MsgMalformedRequest
}
