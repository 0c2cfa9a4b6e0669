package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/campus-footprint/app"
	"github.com/mbolis/campus-footprint/httpx"
	"github.com/mbolis/campus-footprint/model"
	"github.com/mbolis/campus-footprint/records"
)

// ListRecords returns every stored record, contact details included.
func ListRecords(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := records.Snapshot(r.Context(), app.Store)
		if err != nil {
			httpx.LogInternalError(w, "db.read_rows", err)
			return
		}
		if recs == nil {
			recs = []model.FootprintRecord{}
		}

		render.JSON(w, r, map[string]any{
			"records": recs,
		})
	}
}
