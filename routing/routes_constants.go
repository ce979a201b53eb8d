package routing

// Client-side route targets.
const (
	RouteLogin         = "/auth/login"
	RouteLogout        = "/auth/logout"
	RouteOAuthCallback = "/auth/callback"
	RouteLanding       = "/"
	RouteAccount       = "/account"

	// AuthPrefix is the auth-pages namespace authenticated users are steered
	// away from.
	AuthPrefix = "/auth/"

	// RedirectParam carries the originally intended path through a login
	// redirect.
	RedirectParam = "redirect"
)
