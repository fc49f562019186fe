package services

import (
	"Vaulted/internal/config"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeSession  = "session"
	tokenTypeRecovery = "recovery"

	// RecoveryTokenTTL bounds how long a verified OTP grants password-reset
	// authority over a folder.
	RecoveryTokenTTL = 10 * time.Minute
)

var ErrInvalidToken = errors.New("invalid or expired token")

type vaultClaims struct {
	Username  string `json:"username,omitempty"`
	TokenType string `json:"typ"`
	NodeID    uint   `json:"node_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies the two token kinds the dashboard uses:
// session tokens for the admin login cookie and recovery tokens scoped to a
// single folder after OTP verification.
type TokenService interface {
	CreateSessionToken(username string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (string, error)
	CreateRecoveryToken(nodeID uint) (string, error)
	VerifyRecoveryToken(token string) (uint, error)
}

type tokenServiceImpl struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(configuration *config.Configuration) TokenService {
	return &tokenServiceImpl{
		secret: []byte(configuration.Auth.JwtSecret),
		now:    time.Now,
	}
}

func (s *tokenServiceImpl) CreateSessionToken(username string, ttl time.Duration) (string, error) {
	return s.sign(vaultClaims{
		Username:  username,
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
		},
	})
}

func (s *tokenServiceImpl) VerifySessionToken(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.TokenType != tokenTypeSession || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

func (s *tokenServiceImpl) CreateRecoveryToken(nodeID uint) (string, error) {
	return s.sign(vaultClaims{
		TokenType: tokenTypeRecovery,
		NodeID:    nodeID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(RecoveryTokenTTL)),
		},
	})
}

func (s *tokenServiceImpl) VerifyRecoveryToken(token string) (uint, error) {
	claims, err := s.parse(token)
	if err != nil {
		return 0, err
	}
	if claims.TokenType != tokenTypeRecovery || claims.NodeID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.NodeID, nil
}

func (s *tokenServiceImpl) sign(claims vaultClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenServiceImpl) parse(token string) (*vaultClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &vaultClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*vaultClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
