package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/logger"
)

type registerForm struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	Password string `validate:"required,min=8"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type postForm struct {
	Title    string `validate:"required,max=250"`
	Subtitle string `validate:"max=250"`
	Body     string `validate:"required"`
	ImageURL string `validate:"omitempty,url,max=250"`
}

type userForm struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	Password string `validate:"omitempty,min=8"`
	Admin    bool
}

// validateForm runs struct tag validation over a decoded form. The
// failure message is generic on purpose: per-field errors belong to the
// form widgets, which are outside this application's scope.
func validateForm(form any) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(form); err != nil {
		logger.Log.Debug("form validation failed", "error", err)
		return internal_errors.BadRequest("Please fill in all required fields correctly")
	}
	return nil
}

func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return internal_errors.BadRequest("Invalid form data")
	}
	return nil
}
