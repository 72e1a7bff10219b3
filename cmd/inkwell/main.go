package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/inkwell-dev/inkwell/internal/config"
	"github.com/inkwell-dev/inkwell/internal/logger"
	"github.com/inkwell-dev/inkwell/internal/router"
	"github.com/inkwell-dev/inkwell/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("startup failed", "error", err)
		// Bootstrap or storage failures must not leave a half-working
		// server running.
		panic(err)
	}
	defer deps.Storage.Cleanup()

	r := router.SetupRouter(deps)

	srv := &http.Server{
		Addr:              cfg.Public.Address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Log.Info("server started", "address", cfg.Public.Address)
	if err := srv.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		panic(err)
	}
}
