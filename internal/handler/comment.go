package handler

import (
	"fmt"
	"net/http"

	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/flash"
	"github.com/inkwell-dev/inkwell/internal/logger"
)

func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	postURL := fmt.Sprintf("/post/%d", id)

	if err := parseForm(r); err != nil {
		h.redirectWithFlash(w, r, postURL, flash.ErrorCookie, err.Error())
		return
	}

	user := mustUser(r)
	if _, err := h.comments.Add(id, user.Id, r.FormValue("text")); err != nil {
		switch {
		case internal_errors.IsNotFound(err):
			http.NotFound(w, r)
		case internal_errors.IsBadRequest(err):
			h.redirectWithFlash(w, r, postURL, flash.ErrorCookie, err.Error())
		default:
			logger.Log.Error("failed to save comment", "post_id", id, "error", err)
			h.redirectWithFlash(w, r, postURL, flash.ErrorCookie, "Internal error, please try again")
		}
		return
	}

	http.Redirect(w, r, postURL, http.StatusSeeOther)
}
