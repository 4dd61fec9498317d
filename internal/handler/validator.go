package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Custom validation tags
const (
	tagPlatform = "platform"
	tagWager    = "wager"
	tagISODate  = "isodate"
)

// Validator checks decoded request bodies
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator builds the shared validator. Safe to call more than once.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		_ = v.RegisterValidation(tagPlatform, validatePlatform)
		_ = v.RegisterValidation(tagWager, validateWager)
		_ = v.RegisterValidation(tagISODate, validateISODate)

		v.RegisterTagNameFunc(jsonFieldName)

		validate = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// fieldMessages maps a failed tag to the message shown for the field
var fieldMessages = map[string]string{
	"required":    "This field is required",
	"excludesall": "Contains invalid characters",
	tagPlatform:   "Invalid platform",
	tagWager:      "Must be a positive amount",
	tagISODate:    "Must be a date formatted as YYYY-MM-DD",
}

// FormatValidationError turns validator errors into a field -> message map
// keyed by the JSON name, so struct names never reach the client
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			out[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			if msg, ok := fieldMessages[e.Tag()]; ok {
				out[field] = msg
			} else {
				out[field] = "Invalid value"
			}
		}
	}
	return out
}

// ValidPlatforms lists the platforms an account can be linked from
var ValidPlatforms = map[string]bool{
	domain.PlatformDiscord: true,
	domain.PlatformKick:    true,
}

// validatePlatform accepts empty values; pair with required when needed
func validatePlatform(fl validator.FieldLevel) bool {
	platform := fl.Field().String()
	return platform == "" || ValidPlatforms[strings.ToLower(platform)]
}

// validateWager accepts a strictly positive decimal amount
func validateWager(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && amount.IsPositive()
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateLayout, fl.Field().String())
	return err == nil
}
