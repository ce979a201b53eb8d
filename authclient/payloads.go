package authclient

import (
	"encoding/json"

	"github.com/tipspace/go-auth-client/session"
)

// Registration is the sign-up payload. The named fields cover what the service
// documents; Extra carries any additional fields, forwarded unvalidated since
// the remote service is the sole validator of registration data.
type Registration struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	AvatarURL string
	Extra     map[string]any
}

// MarshalJSON flattens Extra alongside the named fields. Named fields win on
// key collisions.
func (r Registration) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any, len(r.Extra)+5)
	for k, v := range r.Extra {
		payload[k] = v
	}
	payload["username"] = r.Username
	payload["email"] = r.Email
	payload["password"] = r.Password
	if r.FullName != "" {
		payload["full_name"] = r.FullName
	}
	if r.AvatarURL != "" {
		payload["avatar_url"] = r.AvatarURL
	}
	return json.Marshal(payload)
}

// loginData is the success payload of the login endpoint.
type loginData struct {
	User         *session.User `json:"user,omitempty"`
	Token        string        `json:"token,omitempty"`
	RefreshToken string        `json:"refresh_token,omitempty"`
}

// refreshData is the success payload of the token-refresh endpoint.
type refreshData struct {
	Token string `json:"token,omitempty"`
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

type passwordResetRequestBody struct {
	Email string `json:"email"`
}

type passwordResetBody struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
