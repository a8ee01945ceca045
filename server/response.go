package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeInvalidRequest = "invalid_request"
	errorTypeServer         = "server_error"
	messageServerError      = "Internal server error"
)

// response is the envelope every API route answers with.
type response struct {
	Status string     `json:"status"`
	Code   int        `json:"code"`
	Data   any        `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response{Status: statusSuccess, Code: statusCode, Data: data})
}

func writeJSONError(w http.ResponseWriter, errorType, message string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response{
		Status: statusError,
		Code:   statusCode,
		Error:  &errorBody{Type: errorType, Message: message},
	})
}

// writeEngineError maps an engine failure onto the envelope. Business
// failures keep their kind and message; anything else is a 500 whose detail
// only reaches the log.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var oauthErr *oauth2.Error
	if errors.As(err, &oauthErr) {
		s.metrics.RequestError(operation, string(oauthErr.Kind))
		writeJSONError(w, string(oauthErr.Kind), oauthErr.Message, oauthErr.Status)
		return
	}

	s.metrics.RequestError(operation, errorTypeServer)
	s.logger.Error().
		Err(err).
		Str("request_id", RequestID(r.Context())).
		Str("operation", operation).
		Msg("token engine failure")
	writeJSONError(w, errorTypeServer, messageServerError, http.StatusInternalServerError)
}
