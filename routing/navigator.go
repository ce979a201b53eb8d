// Package routing holds the navigation contract and the access guard that
// gates route changes on authentication state.
package routing

// Navigator performs page navigation. Implementations wrap whatever redirect
// mechanism the host environment provides; navigation is fire-and-forget, a
// full-page redirect has no meaningful failure to report.
type Navigator interface {
	// NavigateTo moves to an application-internal path.
	NavigateTo(path string)

	// NavigateExternal performs a full-page redirect to an absolute URL.
	NavigateExternal(url string)
}
