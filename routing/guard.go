package routing

import (
	"net/url"
	"strings"

	"github.com/tipspace/go-auth-client/session"
)

// Guard is the per-navigation access check. It is a pure predicate over the
// session's authentication status and the target path; callers apply it
// client-side before every route change.
type Guard struct {
	session *session.Store
}

func NewGuard(store *session.Store) *Guard {
	return &Guard{session: store}
}

// Check returns the path navigation should be redirected to, or "" to allow
// the navigation unchanged.
//
// Unauthenticated users heading anywhere outside the auth pages are sent to
// login with the intended path preserved; sending them to login from an auth
// page as well would redirect the login page to itself. Authenticated users
// are steered away from auth pages, except the logout action.
func (g *Guard) Check(targetPath string) string {
	onAuthPage := strings.HasPrefix(targetPath, AuthPrefix)

	if !g.session.IsAuthenticated() {
		if onAuthPage {
			return ""
		}
		query := url.Values{RedirectParam: {targetPath}}
		return RouteLogin + "?" + query.Encode()
	}

	if onAuthPage && targetPath != RouteLogout {
		return RouteLanding
	}
	return ""
}
