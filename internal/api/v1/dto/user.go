package dto

// Argument objects for the auth and profile commands. Keys are camelCase, as sent by
// the desktop shell.

type SignInDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type ExchangeCodeDTO struct {
	AuthCode     string `json:"authCode" validate:"required"`
	CodeVerifier string `json:"codeVerifier" validate:"required"`
}

// TokenDTO is the argument of commands that only need the caller's session.
type TokenDTO struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type UserDTO struct {
	UserID      string `json:"userId" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
}

type UpdateAvatarDTO struct {
	UserID      string `json:"userId" validate:"required"`
	AvatarURL   string `json:"avatarUrl"`
	AccessToken string `json:"accessToken" validate:"required"`
}

// UploadAvatarDTO carries the image bytes base64-encoded in Data.
type UploadAvatarDTO struct {
	UserID      string `json:"userId" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	Data        []byte `json:"data"`
	AccessToken string `json:"accessToken" validate:"required"`
}

type UpdateUsernameDTO struct {
	UserID      string `json:"userId" validate:"required"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken" validate:"required"`
}

type ValidateCodeDTO struct {
	Code           string `json:"code"`
	Language       string `json:"language" validate:"required"`
	ExpectedOutput string `json:"expectedOutput"`
}
