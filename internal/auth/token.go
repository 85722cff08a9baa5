package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification defect: bad signature, wrong key,
// malformed token, expiry, missing subject. Callers must not distinguish.
var ErrInvalidToken = errors.New("invalid token")

// TokenConfig holds the signing keys and lifetimes for both token classes.
// Built once from config at startup and passed in explicitly.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService issues and verifies access and refresh JWTs. The two classes
// are signed with distinct keys so an access token can never be replayed as a
// refresh token (or the reverse).
type TokenService struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{
		accessKey:  []byte(cfg.AccessSecret),
		refreshKey: []byte(cfg.RefreshSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// IssueAccess signs an access token for subject, expiring accessTTL after now.
func (s *TokenService) IssueAccess(subject string, now time.Time) (string, error) {
	return sign(subject, now, s.accessTTL, s.accessKey)
}

// IssueRefresh signs a refresh token for subject, expiring refreshTTL after now.
func (s *TokenService) IssueRefresh(subject string, now time.Time) (string, error) {
	return sign(subject, now, s.refreshTTL, s.refreshKey)
}

// VerifyAccess returns the subject of a valid, unexpired access token.
func (s *TokenService) VerifyAccess(token string) (string, error) {
	return verify(token, s.accessKey)
}

// VerifyRefresh returns the subject of a valid, unexpired refresh token.
func (s *TokenService) VerifyRefresh(token string) (string, error) {
	return verify(token, s.refreshKey)
}

func sign(subject string, now time.Time, ttl time.Duration, key []byte) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func verify(tokenStr string, key []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
