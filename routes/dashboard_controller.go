package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/mbolis/campus-footprint/analytics"
	"github.com/mbolis/campus-footprint/app"
	"github.com/mbolis/campus-footprint/httpx"
	"github.com/mbolis/campus-footprint/model"
	"github.com/mbolis/campus-footprint/records"
)

const (
	defaultBoardSize = 5
	maxBoardSize     = 100
)

// snapshot loads every record matching the dept/diet query filters. It
// answers the request itself and returns false when there is nothing to
// aggregate.
func snapshot(app app.App, w http.ResponseWriter, r *http.Request) ([]model.FootprintRecord, bool) {
	recs, err := records.Snapshot(r.Context(), app.Store)
	if err != nil {
		httpx.LogInternalError(w, "db.read_rows", err)
		return nil, false
	}

	recs = analytics.Filter(recs, criteriaFrom(r))
	if len(recs) == 0 {
		httpx.NoData(w, r)
		return nil, false
	}
	return recs, true
}

// criteriaFrom reads ?dept=CSE&diet=Vegan&diet=Vegetarian; diets may also be
// comma separated.
func criteriaFrom(r *http.Request) analytics.Criteria {
	q := r.URL.Query()
	c := analytics.Criteria{Department: strings.TrimSpace(q.Get("dept"))}
	for _, v := range q["diet"] {
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				c.Diets = append(c.Diets, model.Diet(d))
			}
		}
	}
	return c
}

func GetFilters(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := records.Snapshot(r.Context(), app.Store)
		if err != nil {
			httpx.LogInternalError(w, "db.read_rows", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"departments": analytics.Departments(recs),
			"diets":       analytics.DietsPresent(recs),
		})
	}
}

type leaderboardEntry struct {
	Rank int `json:"rank"`
	model.PublicRecord
}

func GetLeaderboard(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := defaultBoardSize
		if s := r.URL.Query().Get("n"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 1 || v > maxBoardSize {
				httpx.BadRequest(w, r, "request.query.n", fmt.Errorf("n must be between 1 and %d", maxBoardSize))
				return
			}
			n = v
		}
		order, ok := analytics.ParseOrder(r.URL.Query().Get("order"))
		if !ok {
			httpx.BadRequest(w, r, "request.query.order", errors.New("order must be asc or desc"))
			return
		}

		recs, ok := snapshot(app, w, r)
		if !ok {
			return
		}

		board := analytics.Leaderboard(recs, n, order)
		entries := make([]leaderboardEntry, len(board))
		for i, rec := range board {
			entries[i] = leaderboardEntry{Rank: i + 1, PublicRecord: rec.Public()}
		}

		render.JSON(w, r, map[string]any{
			"status":  "ok",
			"entries": entries,
		})
	}
}

func GetBreakdown(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, ok := snapshot(app, w, r)
		if !ok {
			return
		}

		sums := analytics.CategoryBreakdownSums(recs)
		render.JSON(w, r, map[string]any{
			"status": "ok",
			"count":  len(recs),
			"sums":   sums,
			"total":  sums.Total(),
		})
	}
}

type participation struct {
	Activity     model.Activity `json:"activity"`
	Participants int            `json:"participants"`
}

func GetActivities(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, ok := snapshot(app, w, r)
		if !ok {
			return
		}

		counts := analytics.ActivityParticipationCounts(recs)
		out := make([]participation, len(model.Activities))
		for i, a := range model.Activities {
			out[i] = participation{Activity: a, Participants: counts[a]}
		}

		render.JSON(w, r, map[string]any{
			"status": "ok",
			"counts": out,
		})
	}
}

func GetTrend(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, ok := snapshot(app, w, r)
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"status": "ok",
			"months": analytics.MonthlyAverages(recs),
		})
	}
}

type scatterPoint struct {
	Name string     `json:"name"`
	Diet model.Diet `json:"diet"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
	Z    float64    `json:"z"`
}

// GetScatter serves the 3D view: points within the requested ranges and,
// unless plane=false, the least-squares plane through them.
func GetScatter(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		axes := [3]analytics.Field{analytics.FieldDistance, analytics.FieldElectricity, analytics.FieldTotal}
		for i, key := range []string{"x", "y", "z"} {
			if s := q.Get(key); s != "" {
				f, err := analytics.ParseField(s)
				if err != nil {
					httpx.BadRequest(w, r, "request.query."+key, err)
					return
				}
				axes[i] = f
			}
		}
		ranges, err := rangesFrom(r)
		if err != nil {
			httpx.BadRequest(w, r, "request.query.range", err)
			return
		}
		withPlane := q.Get("plane") != "false"

		recs, ok := snapshot(app, w, r)
		if !ok {
			return
		}

		bounds := map[analytics.Field]analytics.Bounds{}
		for _, f := range axes {
			b, err := analytics.FieldBounds(recs, f)
			if err != nil {
				httpx.LogInternalError(w, "dashboard.scatter.bounds", err)
				return
			}
			bounds[f] = b
		}

		recs = analytics.RangeFilter(recs, ranges)
		points := make([]scatterPoint, len(recs))
		for i, rec := range recs {
			points[i] = scatterPoint{
				Name: rec.Name,
				Diet: rec.Diet,
				X:    axes[0].Value(rec),
				Y:    axes[1].Value(rec),
				Z:    axes[2].Value(rec),
			}
		}

		resp := map[string]any{
			"status": "ok",
			"axes":   axes,
			"bounds": bounds,
			"points": points,
		}
		if withPlane {
			plane, err := analytics.BestFitPlane(recs, axes[0], axes[1], axes[2])
			if err != nil {
				resp["plane_error"] = err.Error()
			} else {
				resp["plane"] = plane
			}
		}
		render.JSON(w, r, resp)
	}
}

// rangesFrom reads min_<field> and max_<field> pairs; a missing side is
// unbounded.
func rangesFrom(r *http.Request) ([]analytics.Range, error) {
	q := r.URL.Query()
	var ranges []analytics.Range
	for _, f := range analytics.Fields {
		minS, maxS := q.Get("min_"+string(f)), q.Get("max_"+string(f))
		if minS == "" && maxS == "" {
			continue
		}

		rg := analytics.Range{Field: f, Min: -1e308, Max: 1e308}
		var err error
		if minS != "" {
			if rg.Min, err = strconv.ParseFloat(minS, 64); err != nil {
				return nil, fmt.Errorf("min_%s: %w", f, err)
			}
		}
		if maxS != "" {
			if rg.Max, err = strconv.ParseFloat(maxS, 64); err != nil {
				return nil, fmt.Errorf("max_%s: %w", f, err)
			}
		}
		if rg.Min > rg.Max {
			return nil, fmt.Errorf("empty range for %s", f)
		}
		ranges = append(ranges, rg)
	}
	return ranges, nil
}
