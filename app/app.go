package app

import (
	"github.com/go-chi/oauth"
	"github.com/mbolis/campus-footprint/config"
	"github.com/mbolis/campus-footprint/footprint"
	"github.com/mbolis/campus-footprint/records"
	"github.com/mbolis/campus-footprint/submission"
)

type App struct {
	Store   records.RecordStore
	Factors footprint.Factors
	*submission.Service
	*oauth.BearerServer
	config.Config
}

func New(cfg config.Config, store records.RecordStore, factors footprint.Factors, bearer *oauth.BearerServer) App {
	return App{
		Store:        store,
		Factors:      factors,
		Service:      submission.NewService(store, factors),
		BearerServer: bearer,
		Config:       cfg,
	}
}
