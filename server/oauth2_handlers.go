package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/jrsteele09/go-oauth-tokens/oauthmodel"
)

const (
	maxFormBytes = 1 << 20

	operationToken  = "token"
	operationVerify = "verify"
	operationRevoke = "revoke"
)

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, errorTypeInvalidRequest, "Failed to parse form data", http.StatusBadRequest)
		return false
	}
	return true
}

// Token issues tokens for the client_credentials, password and refresh_token
// grants.
func (s *Server) Token() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}

		tokenReq := oauthmodel.TokenRequest{
			GrantType:    oauth2.GrantType(r.FormValue("grant_type")),
			ClientID:     r.FormValue("client_id"),
			ClientSecret: r.FormValue("client_secret"),
			UserID:       r.FormValue("user_id"),
			RefreshToken: r.FormValue("refresh_token"),
		}.Normalise()

		tokenResponse, err := s.engine.Token(r.Context(), tokenReq)
		if err != nil {
			s.writeEngineError(w, r, operationToken, err)
			return
		}

		s.metrics.TokenIssued(tokenReq.GrantType)
		writeJSON(w, http.StatusOK, tokenResponse)
	}
}

// Verify checks an access token given as form fields or as an Authorization
// header.
func (s *Server) Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}

		verifyReq := oauthmodel.VerifyRequest{
			TokenType:   r.FormValue("token_type"),
			AccessToken: r.FormValue("access_token"),
		}
		if strings.TrimSpace(verifyReq.TokenType) == "" && strings.TrimSpace(verifyReq.AccessToken) == "" {
			if header := r.Header.Get("Authorization"); header != "" {
				verifyReq = oauthmodel.ParseAuthorizationHeader(header)
			}
		}

		accessToken, err := s.engine.VerifyAccessToken(r.Context(), verifyReq.TokenType, verifyReq.AccessToken)
		if err != nil {
			s.writeEngineError(w, r, operationVerify, err)
			return
		}

		writeJSON(w, http.StatusOK, accessToken)
	}
}

// Revoke deletes the access and/or refresh token named in the form.
func (s *Server) Revoke() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}

		revokeReq := oauthmodel.RevokeRequest{
			AccessToken:  r.FormValue("access_token"),
			RefreshToken: r.FormValue("refresh_token"),
		}.Normalise()

		if err := s.engine.Revoke(r.Context(), revokeReq.AccessToken, revokeReq.RefreshToken); err != nil {
			s.writeEngineError(w, r, operationRevoke, err)
			return
		}

		writeJSON(w, http.StatusOK, nil)
	}
}

// Health reports 503 when the backing store cannot be reached.
func (s *Server) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn().Err(err).Msg("health check failed")
			writeJSONError(w, "unavailable", "Storage unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"state": "ok"})
	}
}
