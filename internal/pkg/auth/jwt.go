package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
	SigningMethod  string
}

// JWTService issues and verifies stateless admin access tokens
type JWTService struct {
	config JWTConfig
	method jwt.SigningMethod
	now    func() time.Time
}

// NewJWTService creates a new JWT service. Unknown signing methods fall back to HS256.
func NewJWTService(config JWTConfig) *JWTService {
	method := signingMethod(config.SigningMethod)
	return &JWTService{
		config: config,
		method: method,
		now:    time.Now,
	}
}

func signingMethod(name string) jwt.SigningMethod {
	switch strings.ToUpper(name) {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// Claims defines JWT token content
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed token for subject. expiresIn is in seconds.
func (s *JWTService) GenerateAccessToken(subject string) (accessToken string, expiresIn int, err error) {
	if subject == "" {
		return "", 0, errors.New("subject is required")
	}

	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   subject,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	accessToken, err = token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create access token: %w", err)
	}

	return accessToken, int(s.config.AccessTokenExp.Seconds()), nil
}

// ValidateToken verifies signature, expiry and issuer and returns the claims.
// Every failure is reported as apperrors.ErrUnauthorized so callers cannot
// tell an expired token from a forged or malformed one.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrUnauthorized
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.TokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.TokenIssuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}

	if claims.Subject == "" {
		return nil, apperrors.ErrUnauthorized
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	const scheme = "bearer "
	if len(authHeader) <= len(scheme) || !strings.EqualFold(authHeader[:len(scheme)], scheme) {
		return "", apperrors.ErrUnauthorized
	}

	token := strings.TrimSpace(authHeader[len(scheme):])
	if token == "" {
		return "", apperrors.ErrUnauthorized
	}
	return token, nil
}
