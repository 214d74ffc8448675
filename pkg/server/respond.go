package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// badRequest marks malformed request input.
type badRequest struct {
	err error
}

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Column  string `json:"column,omitempty"`
	Axis    string `json:"axis,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code. An incomplete selection is not a
// failure and answers 202 with the prompt.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		tooLarge  *http.MaxBytesError
		parse     *models.ParseError
		pre       *models.PreconditionError
		scale     *models.InvalidScaleError
		malformed *badRequest
	)

	switch {
	case models.IsIncomplete(err):
		writeJSON(w, http.StatusAccepted, errorBody{Status: "incomplete", Message: models.PromptOf(err)})
	case errors.As(err, &tooLarge), errors.Is(err, models.ErrTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Status: "error", Message: err.Error()})
	case errors.As(err, &parse), errors.As(err, &malformed),
		errors.Is(err, models.ErrUnknownKind), errors.Is(err, models.ErrUnknownScale):
		writeJSON(w, http.StatusBadRequest, errorBody{Status: "error", Message: err.Error()})
	case errors.As(err, &pre):
		writeJSON(w, http.StatusConflict, errorBody{Status: "reset", Message: err.Error(), Column: pre.Column})
	case errors.Is(err, models.ErrNoTable):
		writeJSON(w, http.StatusConflict, errorBody{Status: "error", Message: err.Error()})
	case errors.As(err, &scale):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Status: "error", Message: err.Error(), Column: scale.Column, Axis: scale.Axis})
	case errors.Is(err, models.ErrNoColumns):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Status: "error", Message: err.Error()})
	default:
		s.log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Status: "error", Message: "internal error"})
	}
}
