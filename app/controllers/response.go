package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"postboard/app/errs"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// errorBody is the JSON shape of every failed response. Err and Stack are
// only filled for 500s when debug errors are enabled.
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"err,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// sendError writes err as a JSON error response. Errors that are not an
// *errs.Error are reported as a bare 500.
func sendError(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	var appErr *errs.Error
	if !errors.As(err, &appErr) {
		appErr = errs.Persistence(http.StatusText(http.StatusInternalServerError), err)
	}

	log := zerolog.Ctx(r.Context())
	body := errorBody{Message: appErr.Message}

	if appErr.Status >= http.StatusInternalServerError {
		log.Error().Stack().Err(appErr.Cause).
			Int("status", appErr.Status).
			Str("kind", appErr.Kind.String()).
			Msg(appErr.Message)
		if debug {
			body.Err = appErr.Cause.Error()
			body.Stack = errs.Stack(appErr)
		}
	} else {
		log.Debug().
			Int("status", appErr.Status).
			Str("kind", appErr.Kind.String()).
			Msg(appErr.Message)
	}

	sendJSON(w, appErr.Status, body)
}

// postID reads the {id} path variable. Anything but a run of decimal
// digits maps to 0, which never matches a stored post.
func postID(r *http.Request) int {
	raw := mux.Vars(r)["id"]
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return id
}
