package handler

import (
	"net/http"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/flash"
	"github.com/inkwell-dev/inkwell/internal/logger"
)

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", nil)
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.redirectWithFlash(w, r, "/register", flash.ErrorCookie, err.Error())
		return
	}

	form := registerForm{
		Email:    r.FormValue("email"),
		Name:     r.FormValue("name"),
		Password: r.FormValue("password"),
	}
	if err := validateForm(form); err != nil {
		h.redirectWithFlash(w, r, "/register", flash.ErrorCookie, err.Error())
		return
	}

	token, err := h.auth.Register(domain.Credentials{Email: form.Email, Password: form.Password}, form.Name)
	if err != nil {
		if internal_errors.IsConflict(err) {
			// Matches the historical behavior: a taken email sends the
			// visitor to the login page instead.
			h.redirectWithFlash(w, r, "/login", flash.ErrorCookie, "An account with this email already exists. Log in instead.")
			return
		}
		logger.Log.Error("registration failed", "error", err)
		h.redirectWithFlash(w, r, "/register", flash.ErrorCookie, err.Error())
		return
	}

	// Registration doubles as login.
	http.SetCookie(w, h.sessionCookie(token, h.Public.SessionTTL))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", nil)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.redirectWithFlash(w, r, "/login", flash.ErrorCookie, err.Error())
		return
	}

	form := loginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := validateForm(form); err != nil {
		h.redirectWithFlash(w, r, "/login", flash.ErrorCookie, err.Error())
		return
	}

	token, err := h.auth.Login(domain.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		if internal_errors.IsUnauthorized(err) {
			h.redirectWithFlash(w, r, "/login", flash.ErrorCookie, err.Error())
			return
		}
		logger.Log.Error("login failed", "error", err)
		h.redirectWithFlash(w, r, "/login", flash.ErrorCookie, "Internal error, please try again")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, h.Public.SessionTTL))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", 0))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
