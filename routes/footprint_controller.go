package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/campus-footprint/app"
	"github.com/mbolis/campus-footprint/footprint"
	"github.com/mbolis/campus-footprint/httpx"
	"github.com/mbolis/campus-footprint/log"
	"github.com/mbolis/campus-footprint/model"
	"github.com/mbolis/campus-footprint/submission"
	"github.com/mbolis/campus-footprint/validation"
)

type locationOption struct {
	Name     string   `json:"name"`
	Distance *float64 `json:"distance"`
}

// GetOptions lists what the submission form may offer.
func GetOptions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations := []locationOption{}
		for _, name := range app.Factors.LocationNames() {
			opt := locationOption{Name: name}
			if km, ok := app.Factors.Locations[name]; ok {
				opt.Distance = &km
			}
			locations = append(locations, opt)
		}

		render.JSON(w, r, map[string]any{
			"genders":    model.Genders,
			"hostel":     model.HostelStatuses,
			"locations":  locations,
			"diets":      model.Diets,
			"activities": model.Activities,
			"factors":    app.Factors,
		})
	}
}

// PreviewFootprint scores a submission without saving it.
func PreviewFootprint(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := model.SubmissionInput{}
		err := render.DecodeJSON(r.Body, &in)
		if err != nil {
			httpx.BadRequest(w, r, "request.parse_body", err)
			return
		}

		rec, err := app.Preview(in)
		if err != nil {
			renderInvalid(w, r, err)
			return
		}

		render.JSON(w, r, map[string]any{
			"status":    "ok",
			"breakdown": rec.Breakdown,
			"badge":     footprint.BadgeFor(rec.Total),
		})
	}
}

func SubmitFootprint(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := model.SubmissionInput{}
		err := render.DecodeJSON(r.Body, &in)
		if err != nil {
			httpx.BadRequest(w, r, "request.parse_body", err)
			return
		}

		res := app.Submit(r.Context(), in)
		switch res.Status {
		case submission.StatusValidationError:
			renderInvalid(w, r, res.Err)

		case submission.StatusPersistenceError:
			log.WithFields(log.Fields{
				"code":  "db.append_row",
				"total": res.Record.Total,
			}).Warn(res.Err)
			render.JSON(w, r, map[string]any{
				"status":    res.Status,
				"warning":   "your footprint was calculated but could not be saved, please try again later",
				"breakdown": res.Record.Breakdown,
				"badge":     res.Badge,
			})

		default:
			log.WithFields(log.Fields{
				"id":    res.Record.ID,
				"dept":  res.Record.Department,
				"total": res.Record.Total,
			}).Info("footprint saved")
			render.Status(r, http.StatusCreated)
			render.JSON(w, r, map[string]any{
				"status":    res.Status,
				"id":        res.Record.ID,
				"breakdown": res.Record.Breakdown,
				"badge":     res.Badge,
			})
		}
	}
}

func renderInvalid(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		httpx.LogInternalError(w, "validation", err)
		return
	}

	log.Debugf("validation: %s", verr)
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, map[string]any{
		"status":  submission.StatusValidationError,
		"message": verr.Error(),
		"errors":  verr.Fields,
	})
}
