package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/flash"
	"github.com/inkwell-dev/inkwell/internal/logger"
	mw "github.com/inkwell-dev/inkwell/internal/middleware"
)

// mustUser returns the authenticated user from the request context.
// Only called on routes behind RequireAuth, where the middleware has
// already guaranteed a non-nil user.
func mustUser(r *http.Request) *domain.User {
	return mw.GetUserFromContext(r)
}

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		logger.Log.Error("failed to list users", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.renderTemplate(w, r, "user-list.html", users)
}

func (h *Handler) EditUserGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userIdParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	user, err := h.users.User(id)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		logger.Log.Error("failed to load user", "user_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, r, "edit-user.html", user)
}

func (h *Handler) EditUserPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := userIdParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	editURL := "/users/" + strconv.FormatInt(id, 10) + "/edit"

	if err := parseForm(r); err != nil {
		h.redirectWithFlash(w, r, editURL, flash.ErrorCookie, err.Error())
		return
	}

	form := userForm{
		Email:    r.FormValue("email"),
		Name:     r.FormValue("name"),
		Password: r.FormValue("password"),
		Admin:    r.FormValue("admin") == "on",
	}
	if err := validateForm(form); err != nil {
		h.redirectWithFlash(w, r, editURL, flash.ErrorCookie, err.Error())
		return
	}

	update := domain.UserUpdate{
		Email: &form.Email,
		Name:  &form.Name,
		Admin: &form.Admin,
	}
	if form.Password != "" {
		update.Password = &form.Password
	}

	if err := h.users.Update(id, update); err != nil {
		switch {
		case internal_errors.IsNotFound(err):
			http.NotFound(w, r)
		case internal_errors.IsConflict(err) || internal_errors.IsBadRequest(err):
			h.redirectWithFlash(w, r, editURL, flash.ErrorCookie, err.Error())
		default:
			logger.Log.Error("failed to update user", "user_id", id, "error", err)
			h.redirectWithFlash(w, r, editURL, flash.ErrorCookie, "Internal error, please try again")
		}
		return
	}

	h.redirectWithFlash(w, r, "/users", flash.SuccessCookie, "User updated")
}

func userIdParam(r *http.Request) (domain.UserId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal_errors.BadRequest("Invalid user id")
	}
	return id, nil
}
