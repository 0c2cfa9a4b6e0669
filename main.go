package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/mbolis/campus-footprint/app"
	"github.com/mbolis/campus-footprint/config"
	"github.com/mbolis/campus-footprint/database"
	"github.com/mbolis/campus-footprint/footprint"
	"github.com/mbolis/campus-footprint/httpx"
	"github.com/mbolis/campus-footprint/log"
	"github.com/mbolis/campus-footprint/routes"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.LogJSON {
		log.UseJSON()
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	factors := footprint.DefaultFactors()
	if cfg.FactorsFile != "" {
		factors, err = footprint.LoadFactors(cfg.FactorsFile)
		if err != nil {
			log.Fatal("main.factors:", err)
		}
	}
	log.Debugf("emission factors: %+v", factors)

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	bearerServer := httpx.NewBearerServer(db, cfg.TokenSecret, cfg.TokenTTL)
	store := database.NewRowStore(db)

	handler := routes.Wire(app.New(cfg, store, factors, bearerServer))

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
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
