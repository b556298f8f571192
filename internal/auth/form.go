// Package auth validates and submits the signup and login form.
package auth

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Mode selects which request the form submits.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSignup {
		return ModeLogin
	}
	return ModeSignup
}

// Label is the button text for the mode.
func (m Mode) Label() string {
	if m == ModeSignup {
		return "Signup"
	}
	return "Login"
}

// Form holds the raw field values. Email and ConfirmPassword only exist in
// signup mode; Email is never sent to the server.
type Form struct {
	Mode            Mode
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type loginInput struct {
	Name     string `validate:"required" label:"Name"`
	Password string `validate:"required" label:"Password"`
}

type signupInput struct {
	Name            string `validate:"required" label:"Name"`
	Email           string `validate:"required,email" label:"Email Address"`
	Password        string `validate:"required" label:"Password"`
	ConfirmPassword string `validate:"required,eqfield=Password" label:"Confirm Password"`
}

// FieldError is one failed field check.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failed field in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// MsgPasswordMismatch is reported when the two signup passwords differ.
const MsgPasswordMismatch = "passwords do not match"

var (
	setupOnce sync.Once
	validate  *govalidator.Validate
	trans     ut.Translator
)

func setup() {
	validate = govalidator.New(govalidator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if l := fld.Tag.Get("label"); l != "" {
			return l
		}
		return fld.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)
}

// Validate checks the fields required by the form's mode. Name and email
// are trimmed before checking; passwords are checked as typed.
func (f Form) Validate() error {
	setupOnce.Do(setup)

	var input any
	switch f.Mode {
	case ModeSignup:
		input = signupInput{
			Name:            strings.TrimSpace(f.Name),
			Email:           strings.TrimSpace(f.Email),
			Password:        f.Password,
			ConfirmPassword: f.ConfirmPassword,
		}
	default:
		input = loginInput{
			Name:     strings.TrimSpace(f.Name),
			Password: f.Password,
		}
	}

	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range ve {
		msg := fe.Translate(trans)
		if fe.Tag() == "eqfield" {
			msg = MsgPasswordMismatch
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.StructField(), Message: msg})
	}
	return out
}
