package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"lessonhub/internal/model"
	"lessonhub/internal/supabase"
	"lessonhub/internal/util"

	"github.com/rs/zerolog"
)

// Sign-up messages, one per auth envelope shape.
const (
	MsgSignUpConfirmEmail = "Account created. Please check your email to confirm your address."
	MsgSignUpCreated      = "Account %s created successfully."
	MsgSignUpSignIn       = "Account created. Please sign in."
	MsgSignedIn           = "Signed in successfully."
)

type AuthService interface {
	SignUp(ctx context.Context, email, password, username string) model.AuthResult
	SignIn(ctx context.Context, email, password string) model.AuthResult
	GoogleSignInURL() string
	ExchangeCodeForSession(ctx context.Context, authCode, codeVerifier string) model.AuthResult
	SignOut(ctx context.Context, accessToken string) error
	IsAdmin(ctx context.Context, accessToken string) (bool, error)
	SessionInfo(accessToken string) (model.SessionInfo, error)
}

type authService struct {
	client      *supabase.Client
	redirectURL string
	jwtSecret   string
	logger      zerolog.Logger
}

// NewAuthService creates an AuthService. redirectURL and jwtSecret may be empty.
func NewAuthService(client *supabase.Client, redirectURL, jwtSecret string, logger zerolog.Logger) AuthService {
	return &authService{
		client:      client,
		redirectURL: redirectURL,
		jwtSecret:   jwtSecret,
		logger:      logger.With().Str("service", "AuthService").Logger(),
	}
}

type signUpBody struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data"`
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type pkceBody struct {
	AuthCode     string `json:"auth_code"`
	CodeVerifier string `json:"code_verifier"`
}

func (s *authService) SignUp(ctx context.Context, email, password, username string) model.AuthResult {
	body := signUpBody{
		Email:    email,
		Password: password,
		Data:     map[string]string{"username": username},
	}
	session, err := supabase.Request[model.AuthSession](ctx, s.client, http.MethodPost, "/auth/v1/signup", "", body)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Sign-up rejected")
		return model.AuthResult{Success: false, Message: err.Error()}
	}

	res := resultFromSession(session)
	switch {
	case session.User.ConfirmationSentAt != nil:
		res.Message = MsgSignUpConfirmEmail
	case session.AccessToken != nil:
		res.Message = fmt.Sprintf(MsgSignUpCreated, username)
	default:
		res.Message = MsgSignUpSignIn
	}
	return res
}

func (s *authService) SignIn(ctx context.Context, email, password string) model.AuthResult {
	body := credentialsBody{Email: email, Password: password}
	session, err := supabase.Request[model.AuthSession](ctx, s.client, http.MethodPost, "/auth/v1/token?grant_type=password", "", body)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Sign-in rejected")
		return model.AuthResult{Success: false, Message: err.Error()}
	}
	res := resultFromSession(session)
	res.Message = MsgSignedIn
	return res
}

// GoogleSignInURL returns the provider authorize URL. It is opened by the caller, never fetched.
func (s *authService) GoogleSignInURL() string {
	q := url.Values{}
	q.Set("provider", "google")
	if s.redirectURL != "" {
		q.Set("redirect_to", s.redirectURL)
	}
	return s.client.BaseURL() + "/auth/v1/authorize?" + q.Encode()
}

// ExchangeCodeForSession completes the OAuth PKCE flow started by GoogleSignInURL.
func (s *authService) ExchangeCodeForSession(ctx context.Context, authCode, codeVerifier string) model.AuthResult {
	body := pkceBody{AuthCode: authCode, CodeVerifier: codeVerifier}
	session, err := supabase.Request[model.AuthSession](ctx, s.client, http.MethodPost, "/auth/v1/token?grant_type=pkce", "", body)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Code exchange rejected")
		return model.AuthResult{Success: false, Message: err.Error()}
	}
	res := resultFromSession(session)
	res.Message = MsgSignedIn
	return res
}

func (s *authService) SignOut(ctx context.Context, accessToken string) error {
	_, err := supabase.Request[supabase.Unit](ctx, s.client, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	if err != nil {
		return err
	}
	return nil
}

type currentUser struct {
	ID string `json:"id"`
}

type profileRole struct {
	Role any `json:"role"`
}

// IsAdmin resolves the token to a user and checks the role on its profile row.
// A missing row or a role that is not a string yields false.
func (s *authService) IsAdmin(ctx context.Context, accessToken string) (bool, error) {
	user, err := supabase.Request[currentUser](ctx, s.client, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return false, err
	}

	endpoint := supabase.From("profiles").Eq("id", user.ID).Select("role").String()
	rows, err := supabase.Rest[[]profileRole](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	role, ok := rows[0].Role.(string)
	if !ok {
		return false, nil
	}
	return model.IsAdminRole(role), nil
}

// SessionInfo decodes the access token locally. The signature is checked only when a
// JWT secret is configured.
func (s *authService) SessionInfo(accessToken string) (model.SessionInfo, error) {
	return util.ParseSession(accessToken, s.jwtSecret)
}

func resultFromSession(session model.AuthSession) model.AuthResult {
	res := model.AuthResult{
		Success:      true,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}
	if session.User.ID != "" {
		id := session.User.ID
		res.UserID = &id
	}
	return res
}
