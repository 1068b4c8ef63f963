package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterBindings adds the custom rules used in request structs to gin's
// validator engine:
//
//	personname      letters and spaces only
//	strongpassword  at least one lowercase, one uppercase and one digit
//	headword        IsValidWord
func RegisterBindings() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*playground.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		rules := map[string]playground.Func{
			"personname":     func(fl playground.FieldLevel) bool { return IsPersonName(fl.Field().String()) },
			"strongpassword": func(fl playground.FieldLevel) bool { return IsStrongPassword(fl.Field().String()) },
			"headword":       func(fl playground.FieldLevel) bool { return IsValidWord(fl.Field().String()) },
		}
		for tag, fn := range rules {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func IsPersonName(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func IsStrongPassword(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// Messages turns validator errors into one readable line per field.
func Messages(err error) []string {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe playground.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "personname":
		return field + " may only contain letters and spaces"
	case "strongpassword":
		return field + " must contain a lowercase letter, an uppercase letter and a digit"
	case "headword":
		return field + " is not a valid word"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
