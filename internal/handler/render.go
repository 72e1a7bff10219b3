package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/flash"
	"github.com/inkwell-dev/inkwell/internal/logger"
	mw "github.com/inkwell-dev/inkwell/internal/middleware"
)

// CommonTemplateData holds fields shared by all page templates,
// available as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	User      *domain.User // nil for anonymous visitors
	Admin     bool         // fresh from the store this request, never a cached claim
	Error     string
	Success   string
	CSRFToken string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	user := mw.GetUserFromContext(r)
	return CommonTemplateData{
		User:      user,
		Admin:     user != nil && user.Admin,
		Error:     flash.Pop(w, r, flash.ErrorCookie, h.Public.SecureCookies),
		Success:   flash.Pop(w, r, flash.SuccessCookie, h.Public.SecureCookies),
		CSRFToken: mw.GetCSRFTokenFromContext(r),
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	// Render into a buffer first so template failures produce a clean
	// 500 instead of a half-written page.
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, targetURL, cookieName, message string) {
	flash.Set(w, cookieName, message, h.Public.SecureCookies)
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}
