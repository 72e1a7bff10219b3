// Package token issues and verifies the session tokens held in the
// client's accessToken cookie.
//
// Claims carry only the user id and expiry. The identity itself (name,
// admin flag) is restored from the credential store on every request, so
// revoking admin rights takes effect on the next request rather than at
// token expiry.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/logger"
)

type JWT struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

func (j *JWT) TTL() time.Duration {
	return j.ttl
}

func (j *JWT) NewToken(userId int64) (string, error) {
	claims := jwt.MapClaims{
		"uid": userId,
		"exp": time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return "", internal_errors.Unauthorized("Can't create session token")
	}

	return tokenString, nil
}

// UserId verifies tokenStr and returns the user id it is bound to.
func (j *JWT) UserId(tokenStr string) (int64, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.Unauthorized(fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]))
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return 0, internal_errors.Unauthorized("Invalid session token")
	}
	if !token.Valid {
		return 0, internal_errors.Unauthorized("Invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, internal_errors.Unauthorized("Invalid session token claims")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, internal_errors.Unauthorized("Invalid session token claims")
	}

	return int64(uid), nil
}
