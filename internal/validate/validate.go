// Package validate checks card registration input before any network I/O.
//
// Checks are purely syntactic: presence, digit-only card fields, length
// bounds and an MMYY expiration with a real month. Whether a card is
// acceptable to the issuer is left to the remote service.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dwaplatform/client-go/internal/apierrors"
)

// MaxTokenLength is the longest registration token accepted.
const MaxTokenLength = 128

type registrationFields struct {
	Token      string `json:"token" validate:"required,max=128,nospace"`
	CardNumber string `json:"cardNumber" validate:"required,number,min=12,max=19"`
	Expiration string `json:"expiration" validate:"required,mmyy"`
	CVV        string `json:"cvv" validate:"required,number,min=3,max=4"`
}

type accountFields struct {
	ClientID  string `json:"clientId" validate:"required,excludes=/"`
	UserID    string `json:"userId" validate:"required,excludes=/"`
	AccountID string `json:"accountId" validate:"required,excludes=/"`
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// Registration of built-in-free tags cannot fail.
	_ = val.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
		return IsMMYY(fl.Field().String())
	})
	_ = val.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	return val
}

// RegistrationFields validates the four card registration fields and
// returns the first failure, in field order, as *apierrors.ValidationError.
func RegistrationFields(token, cardNumber, expiration, cvv string) error {
	return check(registrationFields{
		Token:      token,
		CardNumber: cardNumber,
		Expiration: expiration,
		CVV:        cvv,
	})
}

// Account validates the identifiers that make up the registration path.
func Account(clientID, userID, accountID string) error {
	return check(accountFields{
		ClientID:  clientID,
		UserID:    userID,
		AccountID: accountID,
	})
}

// IsMMYY reports whether s is four digits with a month between 01 and 12.
func IsMMYY(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	mm := int(s[0]-'0')*10 + int(s[1]-'0')
	return mm >= 1 && mm <= 12
}

func check(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate: %w", err) //coverage:ignore
	}
	fe := fieldErrs[0]
	return &apierrors.ValidationError{
		Field:  fe.Field(),
		Reason: reason(fe),
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "number":
		return "must be numeric"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "mmyy":
		return "must be MMYY with a month between 01 and 12"
	case "nospace":
		return "must not contain whitespace"
	case "excludes":
		return fmt.Sprintf("must not contain %q", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
