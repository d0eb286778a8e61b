package util

import (
	"errors"
	"fmt"
	"time"

	"lessonhub/internal/model"

	"github.com/dgrijalva/jwt-go"
)

// Claims are the Supabase access token claims we care about.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// ParseClaims decodes a token. With an empty secret the signature is not checked.
// An expired but otherwise valid token is returned together with its claims and
// expired set to true.
func ParseClaims(tokenString, secret string) (claims *Claims, verified bool, err error) {
	if tokenString == "" {
		return nil, false, errors.New("access token is empty")
	}

	claims = &Claims{}
	if secret == "" {
		if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
			return nil, false, fmt.Errorf("failed to parse token: %w", err)
		}
		return claims, false, nil
	}

	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorExpired {
			return claims, true, nil
		}
		return nil, false, fmt.Errorf("failed to validate token: %w", err)
	}
	return claims, true, nil
}

// ParseSession turns an access token into the session summary shown by the UI.
func ParseSession(tokenString, secret string) (model.SessionInfo, error) {
	claims, verified, err := ParseClaims(tokenString, secret)
	if err != nil {
		return model.SessionInfo{}, err
	}
	if claims.Subject == "" {
		return model.SessionInfo{}, errors.New("token has no subject")
	}
	return model.SessionInfo{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt,
		Expired:   claims.ExpiresAt != 0 && time.Now().Unix() > claims.ExpiresAt,
		Verified:  verified,
	}, nil
}
