package model

import "encoding/json"

// AuthUser is the user object inside an Auth response.
type AuthUser struct {
	ID                 string  `json:"id"`
	Email              *string `json:"email,omitempty"`
	ConfirmationSentAt *string `json:"confirmation_sent_at,omitempty"`
}

// AuthSession is the body returned by the signup and token endpoints.
type AuthSession struct {
	AccessToken  *string  `json:"access_token"`
	RefreshToken *string  `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// UnmarshalJSON also accepts a bare user object, which is what signup returns while
// the email address is unconfirmed.
func (s *AuthSession) UnmarshalJSON(data []byte) error {
	type plain AuthSession
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.User.ID == "" && p.AccessToken == nil {
		var u AuthUser
		if err := json.Unmarshal(data, &u); err == nil && u.ID != "" {
			p.User = u
		}
	}
	*s = AuthSession(p)
	return nil
}

// AuthResult is what sign-in style operations hand back to the UI.
type AuthResult struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	UserID       *string `json:"user_id,omitempty"`
	AccessToken  *string `json:"access_token,omitempty"`
	RefreshToken *string `json:"refresh_token,omitempty"`
}

// SessionInfo is decoded locally from an access token.
type SessionInfo struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	ExpiresAt int64  `json:"expires_at"`
	Expired   bool   `json:"expired"`
	Verified  bool   `json:"verified"`
}
