package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/cycleinsights/internal/models"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

var (
	ErrSessionTokenMissing              = errors.New("missing session token")
	ErrSessionTokenInvalid              = errors.New("invalid session token")
	ErrSessionTokenExpired              = errors.New("expired session token")
	ErrSessionTokenInvalidUserID        = errors.New("invalid session token user id")
	ErrSessionTokenInvalidPasswordState = errors.New("invalid session token password state")
)

// SessionClaims bind a token to the password hash it was issued under, so a
// password change or reset revokes every outstanding session.
type SessionClaims struct {
	UserID        uint   `json:"uid"`
	PasswordState string `json:"password_state"`
	jwt.RegisteredClaims
}

func BuildSessionToken(secretKey []byte, user *models.User, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now.IsZero() {
		now = time.Now()
	}

	passwordState := PasswordStateFingerprint(user.PasswordHash)
	if passwordState == "" {
		return "", ErrSessionTokenInvalidPasswordState
	}

	claims := SessionClaims{
		UserID:        user.ID,
		PasswordState: passwordState,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func ParseSessionToken(secretKey []byte, rawToken string, now time.Time) (*SessionClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrSessionTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionTokenExpired
		}
		return nil, ErrSessionTokenInvalid
	}
	if !token.Valid {
		return nil, ErrSessionTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, ErrSessionTokenExpired
	}
	if claims.UserID == 0 {
		return nil, ErrSessionTokenInvalidUserID
	}
	if strings.TrimSpace(claims.PasswordState) == "" {
		return nil, ErrSessionTokenInvalidPasswordState
	}
	return claims, nil
}

func PasswordStateFingerprint(passwordHash string) string {
	normalizedHash := strings.TrimSpace(passwordHash)
	if normalizedHash == "" {
		return ""
	}

	sum := sha256.Sum256([]byte("cycleinsights.session.password-state.v1:" + normalizedHash))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func IsPasswordStateFingerprintMatch(expected string, passwordHash string) bool {
	actual := PasswordStateFingerprint(passwordHash)
	if strings.TrimSpace(expected) == "" || strings.TrimSpace(actual) == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
