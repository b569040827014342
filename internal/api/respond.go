package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"hypokit/domain/core"
	"hypokit/internal/errors"
)

var errNoDataset = errors.NotFound("dataset")

// envelope wraps stateless results with the run that produced them
type envelope struct {
	RunID  core.RunID `json:"run_id"`
	Result any        `json:"result"`
}

type errorBody struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("Encoding response: %v", err)
		http.Error(w, `{"code":"INTERNAL_ERROR","error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (a *App) writeResult(w http.ResponseWriter, result any) {
	a.writeJSON(w, http.StatusOK, envelope{RunID: core.NewRunID(), Result: result})
}

// writeError classifies err and renders it as {"code", "error"}
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.FromDomain(err)
	status := errors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		a.logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		a.logger.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}
	a.writeJSON(w, status, errorBody{
		Code:      appErr.Code,
		Error:     appErr.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// decode reads a JSON body into v, rejecting unknown fields
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &errors.AppError{Code: errors.CodeInvalidInput, Message: "malformed request body", Cause: err}
	}
	return nil
}

// decodeOptional is decode for endpoints whose body may be empty
func decodeOptional(r *http.Request, v any) error {
	if err := decode(r, v); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}
