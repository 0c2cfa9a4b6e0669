package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/campus-footprint/app"
	"github.com/mbolis/campus-footprint/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	if app.PublicDir != "" {
		root.Mount("/", servePublicFiles(app.PublicDir))
	}

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/options", GetOptions(app))
	api.Post("/footprints/preview", PreviewFootprint(app))
	api.Post("/footprints", SubmitFootprint(app))

	api.Route("/dashboard", func(r chi.Router) {
		r.Get("/filters", GetFilters(app))
		r.Get("/leaderboard", GetLeaderboard(app))
		r.Get("/breakdown", GetBreakdown(app))
		r.Get("/activities", GetActivities(app))
		r.Get("/trend", GetTrend(app))
		r.Get("/scatter", GetScatter(app))
	})

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		r.Get("/records", ListRecords(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
