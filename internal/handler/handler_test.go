package handler

import (
	"context"
	"encoding/base64"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/config"
	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/markdown"
)

// --- Service mocks ---

type MockAuthService struct {
	RegisterFunc func(creds domain.Credentials, name string) (string, error)
	LoginFunc    func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Register(creds domain.Credentials, name string) (string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(creds, name)
	}
	return "token", nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "token", nil
}

type MockUserService struct {
	UserFunc   func(id domain.UserId) (domain.User, error)
	ListFunc   func() ([]domain.User, error)
	UpdateFunc func(id domain.UserId, update domain.UserUpdate) error
}

func (m *MockUserService) User(id domain.UserId) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(id)
	}
	return domain.User{Id: id, Email: "u@example.com", Name: "U"}, nil
}

func (m *MockUserService) List() ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *MockUserService) Update(id domain.UserId, update domain.UserUpdate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, update)
	}
	return nil
}

type MockPostService struct {
	AllFunc    func() ([]domain.Post, error)
	GetFunc    func(id domain.PostId) (domain.Post, error)
	CreateFunc func(authorId domain.UserId, draft domain.PostDraft) (domain.PostId, error)
	UpdateFunc func(id domain.PostId, draft domain.PostDraft) error
	DeleteFunc func(id domain.PostId) error
}

func (m *MockPostService) All() ([]domain.Post, error) {
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil, nil
}

func (m *MockPostService) Get(id domain.PostId) (domain.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return domain.Post{Id: id, Title: "T", Body: "B"}, nil
}

func (m *MockPostService) Create(authorId domain.UserId, draft domain.PostDraft) (domain.PostId, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(authorId, draft)
	}
	return 1, nil
}

func (m *MockPostService) Update(id domain.PostId, draft domain.PostDraft) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, draft)
	}
	return nil
}

func (m *MockPostService) Delete(id domain.PostId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

type MockCommentService struct {
	AddFunc     func(postId domain.PostId, authorId domain.UserId, text string) (domain.CommentId, error)
	ForPostFunc func(postId domain.PostId) ([]domain.Comment, error)
}

func (m *MockCommentService) Add(postId domain.PostId, authorId domain.UserId, text string) (domain.CommentId, error) {
	if m.AddFunc != nil {
		return m.AddFunc(postId, authorId, text)
	}
	return 1, nil
}

func (m *MockCommentService) ForPost(postId domain.PostId) ([]domain.Comment, error) {
	if m.ForPostFunc != nil {
		return m.ForPostFunc(postId)
	}
	return nil, nil
}

type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// --- Test fixtures ---

// testTemplates builds stripped-down versions of the real pages so tests
// exercise the render path without the full template tree.
func testTemplates(t *testing.T) map[string]*template.Template {
	t.Helper()

	pages := map[string]string{
		"index.html":     `index:{{range .Data}}[{{.Title}}]{{end}}{{if .Common.Error}} err={{.Common.Error}}{{end}}`,
		"post.html":      `post:{{.Data.Post.Title}} body={{.Data.Post.RenderedBody}} comments={{len .Data.Comments}}`,
		"login.html":     `login{{if .Common.Error}} err={{.Common.Error}}{{end}}`,
		"register.html":  `register`,
		"make-post.html": `make-post{{if .Data}} editing={{.Data.Title}}{{end}}`,
		"user-list.html": `users:{{range .Data}}[{{.Name}}]{{end}}`,
		"edit-user.html": `edit-user:{{.Data.Email}}`,
		"about.html":     `about`,
		"contact.html":   `contact`,
		"403.html":       `forbidden page`,
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, body := range pages {
		tmpl, err := template.New("base.html").Parse(body)
		require.NoError(t, err)
		templates[name] = tmpl
	}
	return templates
}

type handlerMocks struct {
	auth     *MockAuthService
	users    *MockUserService
	posts    *MockPostService
	comments *MockCommentService
	pinger   *MockPinger
}

func newTestHandler(t *testing.T) (*Handler, *handlerMocks) {
	t.Helper()
	mocks := &handlerMocks{
		auth:     &MockAuthService{},
		users:    &MockUserService{},
		posts:    &MockPostService{},
		comments: &MockCommentService{},
		pinger:   &MockPinger{},
	}
	h := New(
		testTemplates(t),
		config.Public{SessionTTL: time.Hour},
		mocks.auth,
		mocks.users,
		mocks.posts,
		mocks.comments,
		markdown.New(),
		mocks.pinger,
	)
	return h, mocks
}

// testRouter mounts the handler on the real route patterns so URL params
// resolve the same way they do in production.
func testRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", h.IndexHandler)
	r.Get("/post/{id}", h.ShowPostHandler)
	r.Post("/post/{id}/comments", h.CreateCommentHandler)
	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)
	r.Get("/register", h.RegisterGetHandler)
	r.Post("/register", h.RegisterPostHandler)
	r.Get("/logout", h.LogoutHandler)
	r.Get("/new-post", h.NewPostGetHandler)
	r.Post("/new-post", h.NewPostPostHandler)
	r.Get("/edit-post/{id}", h.EditPostGetHandler)
	r.Post("/edit-post/{id}", h.EditPostPostHandler)
	r.Post("/delete/{id}", h.DeletePostHandler)
	r.Get("/users", h.ListUsersHandler)
	r.Get("/users/{id}/edit", h.EditUserGetHandler)
	r.Post("/users/{id}/edit", h.EditUserPostHandler)
	r.Get("/healthz", h.HealthHandler)
	r.Get("/readyz", h.ReadyHandler)
	return r
}

func flashValue(t *testing.T, w *httptest.ResponseRecorder, name string) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			decoded, err := base64.StdEncoding.DecodeString(c.Value)
			require.NoError(t, err)
			return string(decoded)
		}
	}
	return ""
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
