package api

// Remote service endpoints. All paths are relative to the configured base URL.
const (
	RouteRegister         = "/auth/register"
	RouteLogin            = "/auth/login"
	RouteOAuthProvider    = "/auth/oauth/" // + provider name
	RouteCurrentUser      = "/auth/me"
	RouteRefresh          = "/auth/refresh"
	RouteLogout           = "/auth/logout"
	RouteRequestPwdReset  = "/auth/request-password-reset"
	RouteResetPassword    = "/auth/reset-password"
	RouteResendVerifyMail = "/auth/resend-verification-email"
)
