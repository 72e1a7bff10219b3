package handler

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/inkwell-dev/inkwell/internal/config"
	"github.com/inkwell-dev/inkwell/internal/markdown"
	"github.com/inkwell-dev/inkwell/internal/service"
)

// Pinger is the readiness-probe view of the storage layer.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public

	auth     service.AuthService
	users    service.UserService
	posts    service.PostService
	comments service.CommentService
	md       *markdown.Renderer
	health   Pinger
}

func New(
	templates map[string]*template.Template,
	publicCfg config.Public,
	auth service.AuthService,
	users service.UserService,
	posts service.PostService,
	comments service.CommentService,
	md *markdown.Renderer,
	health Pinger,
) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		auth:      auth,
		users:     users,
		posts:     posts,
		comments:  comments,
		md:        md,
		health:    health,
	}
}

func (h *Handler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if value == "" {
		maxAge = -1
	}
	return &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
