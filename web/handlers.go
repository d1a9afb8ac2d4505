package web

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

// Bodies larger than this are rejected. Imports of a few thousand players stay well
// below it.
const maxBodyBytes = 10 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// writeError maps the kind of err to a status code and writes its message.
func writeError(w http.ResponseWriter, r *http.Request, render *render.Render, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	var e *model.Error
	if errors.As(err, &e) {
		msg = e.Message
		switch {
		case errors.Is(e, model.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(e, model.ErrConflict):
			status = http.StatusConflict
		case errors.Is(e, model.ErrNotFound):
			status = http.StatusNotFound
		}
	}

	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
	}
	render.JSON(w, status, messageResponse{Message: msg})
}

// decodeBody reads a JSON body into v. An empty body leaves v unchanged.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.Validationf("request body is too large")
		}
		return model.Validationf("request body is not valid JSON")
	}
	return nil
}

// wholeNumber floors a JSON number or numeric string. ok is false for anything
// else, including a missing value.
func wholeNumber(v any) (n int, ok bool) {
	f, ok := model.ParseNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Floor(f)), true
}
