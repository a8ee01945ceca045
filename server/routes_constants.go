package server

const (
	RouteOAuth2Token  = "/oauth2/token"
	RouteOAuth2Verify = "/oauth2/verify"
	RouteOAuth2Revoke = "/oauth2/revoke"
	RouteMetrics      = "/metrics"
	RouteHealth       = "/healthz"
)
