package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/hkunchal47/formgen/app"
	"github.com/hkunchal47/formgen/config"
	"github.com/hkunchal47/formgen/database"
	"github.com/hkunchal47/formgen/generate"
	"github.com/hkunchal47/formgen/log"
	"github.com/hkunchal47/formgen/routes"
	"github.com/hkunchal47/formgen/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	app := app.App{
		Store:     store.New(db),
		Generator: generate.New(cfg),
		Config:    cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
