package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+RouteOAuth2Token, ChainMiddleware(s.Token(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteOAuth2Verify, ChainMiddleware(s.Verify(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteOAuth2Revoke, ChainMiddleware(s.Revoke(), s.APIMiddleware()...))

	// Browser preflight for the API routes.
	s.RegisterRouteHandler("OPTIONS /oauth2/{endpoint}", ChainMiddleware(s.preflight(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteMetrics, s.metrics.Handler().ServeHTTP)
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.Health(), s.RecoverMiddleware))
}

// preflight answers OPTIONS requests that carry no Origin header.
func (s *Server) preflight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
