package setup

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/inkwell-dev/inkwell/internal/config"
	"github.com/inkwell-dev/inkwell/internal/handler"
	"github.com/inkwell-dev/inkwell/internal/markdown"
	mw "github.com/inkwell-dev/inkwell/internal/middleware"
	"github.com/inkwell-dev/inkwell/internal/service"
	"github.com/inkwell-dev/inkwell/internal/storage/pg"
	"github.com/inkwell-dev/inkwell/internal/token"
)

const baseTemplate = "base.html"

type Dependencies struct {
	Handler *handler.Handler
	Auth    *mw.Auth
	Public  config.Public
	Storage *pg.Storage
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, err := pg.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// First-run database initialization must complete before the server
	// accepts a single request.
	bootstrap := service.NewBootstrap(store, cfg.Private.SeedAdmin)
	if err := bootstrap.Run(); err != nil {
		store.Cleanup()
		return nil, err
	}

	tokens := token.New(cfg.SessionKey(), cfg.SessionTTL())

	authSvc := service.NewAuth(store, tokens)
	userSvc := service.NewUser(store)
	postSvc := service.NewPost(store)
	commentSvc := service.NewComment(store)

	templates := mustLoadTemplates(cfg.Public.TemplatesDir)
	md := markdown.New()

	h := handler.New(templates, cfg.Public, authSvc, userSvc, postSvc, commentSvc, md, store)

	auth := mw.NewAuth(tokens, store, cfg.Public.SecureCookies)
	auth.SetForbiddenHandler(h.ForbiddenHandler)

	return &Dependencies{
		Handler: h,
		Auth:    auth,
		Public:  cfg.Public,
		Storage: store,
	}, nil
}

func formatDate(t time.Time) string {
	return t.Format("January 02, 2006")
}

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate {
			templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(
				template.FuncMap{
					"formatDate": formatDate,
				},
			).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
			))
		}
	}
	return templates
}
