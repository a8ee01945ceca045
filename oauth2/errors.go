package oauth2

import (
	"errors"
	"net/http"
	"slices"
)

// ErrorKind is the stable machine-readable identifier of a request failure.
// Callers branch on the kind, never on the message text.
type ErrorKind string

const (
	ErrClientNotFound               ErrorKind = "client_not_found"
	ErrInvalidClientCredentials     ErrorKind = "invalid_client_credentials"
	ErrClientIDRefreshTokenRequired ErrorKind = "client_id_refresh_token_required"
	ErrInvalidRefreshToken          ErrorKind = "invalid_refresh_token"
	ErrInvalidForClient             ErrorKind = "invalid_for_client"
	ErrExpiredRefreshToken          ErrorKind = "expired_refresh_token"
	ErrTokenTypeAccessTokenRequired ErrorKind = "token_type_access_token_required"
	ErrInvalidTokenType             ErrorKind = "invalid_token_type"
	ErrInvalidAccessToken           ErrorKind = "invalid_access_token"
	ErrExpiredAccessToken           ErrorKind = "expired_access_token"
	ErrInvalidGrantType             ErrorKind = "invalid_grant_type"
	ErrUserIDRequired               ErrorKind = "user_id_required"
)

type kindInfo struct {
	status  int
	message string
}

var kinds = map[ErrorKind]kindInfo{
	ErrClientNotFound:               {http.StatusBadRequest, "Client not found"},
	ErrInvalidClientCredentials:     {http.StatusBadRequest, "Invalid client credentials"},
	ErrClientIDRefreshTokenRequired: {http.StatusBadRequest, "client_id and refresh_token required"},
	ErrInvalidRefreshToken:          {http.StatusBadRequest, "invalid refresh_token"},
	ErrInvalidForClient:             {http.StatusBadRequest, "refresh_token is invalid for client"},
	ErrExpiredRefreshToken:          {http.StatusBadRequest, "Refresh token has expired"},
	ErrTokenTypeAccessTokenRequired: {http.StatusForbidden, "access_token with token_type required"},
	ErrInvalidTokenType:             {http.StatusForbidden, "Invalid token_type"},
	ErrInvalidAccessToken:           {http.StatusForbidden, "Invalid access_token"},
	ErrExpiredAccessToken:           {http.StatusUnauthorized, "Access token has expired"},
	ErrInvalidGrantType:             {http.StatusBadRequest, "Invalid grant_type"},
	ErrUserIDRequired:               {http.StatusBadRequest, "user_id required"},
}

var kindOrder = []ErrorKind{
	ErrClientNotFound,
	ErrInvalidClientCredentials,
	ErrClientIDRefreshTokenRequired,
	ErrInvalidRefreshToken,
	ErrInvalidForClient,
	ErrExpiredRefreshToken,
	ErrTokenTypeAccessTokenRequired,
	ErrInvalidTokenType,
	ErrInvalidAccessToken,
	ErrExpiredAccessToken,
	ErrInvalidGrantType,
	ErrUserIDRequired,
}

// Kinds returns every defined error kind in declaration order.
func Kinds() []ErrorKind {
	return slices.Clone(kindOrder)
}

// Valid reports whether k is one of the defined kinds.
func (k ErrorKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Status is the HTTP-like status code attached to k. Unknown kinds map to 500.
func (k ErrorKind) Status() int {
	if info, ok := kinds[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Message is the default human readable description of k.
func (k ErrorKind) Message() string {
	return kinds[k].message
}

// Err builds an *Error of this kind with the default message.
func (k ErrorKind) Err() *Error {
	return &Error{Kind: k, Status: k.Status(), Message: k.Message()}
}

// Errf builds an *Error of this kind with a custom message.
func (k ErrorKind) Errf(message string) *Error {
	return &Error{Kind: k, Status: k.Status(), Message: message}
}

// Error is a recoverable business-rule failure returned by the token engine.
type Error struct {
	Kind    ErrorKind `json:"type"`
	Status  int       `json:"-"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Is matches another *Error with the same kind, so errors.Is(err, oauth2.ErrUserIDRequired.Err()) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the ErrorKind from err. The boolean is false when err is
// not a business-rule failure (for example a storage error).
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
