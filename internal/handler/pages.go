package handler

import "net/http"

func (h *Handler) AboutHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "about.html", nil)
}

func (h *Handler) ContactHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "contact.html", nil)
}

// ForbiddenHandler renders the 403 page body. The auth middleware has
// already written the status code, so this must not call WriteHeader.
func (h *Handler) ForbiddenHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "403.html", nil)
}
