package httpx

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/campus-footprint/log"
)

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and cause at debug level, and send a JSON body
// {"status": "bad_request", "message": ...} with status 400
func BadRequest(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Debugf("%s: %s", code, err)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]any{
		"status":  "bad_request",
		"message": err.Error(),
	})
}

// NoData answers 200 with an explicit empty result, for dashboards over an
// empty store.
func NoData(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status": "no_data",
	})
}
