package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "super-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "placement.test",
	})
}

func flipSignatureByte(t *testing.T, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[0] ^= 0xFF
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)
	return strings.Join(parts, ".")
}

func TestGenerateAndValidate_Success(t *testing.T) {
	s := newTestJWTService()

	tok, expiresIn, err := s.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "placement.test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateAccessToken_EmptySubject(t *testing.T) {
	_, _, err := newTestJWTService().GenerateAccessToken("")
	assert.Error(t, err)
}

func TestValidateToken_FailuresAreIndistinguishable(t *testing.T) {
	s := newTestJWTService()

	valid, _, err := s.GenerateAccessToken("admin")
	require.NoError(t, err)

	issuedEarlier := newTestJWTService()
	issuedEarlier.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := issuedEarlier.GenerateAccessToken("admin")
	require.NoError(t, err)

	otherSecret := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "placement.test"})
	forged, _, err := otherSecret.GenerateAccessToken("admin")
	require.NoError(t, err)

	otherIssuer := NewJWTService(JWTConfig{SecretKey: "super-secret", AccessTokenExp: time.Hour, TokenIssuer: "elsewhere"})
	wrongIssuer, _, err := otherIssuer.GenerateAccessToken("admin")
	require.NoError(t, err)

	otherAlg := NewJWTService(JWTConfig{SecretKey: "super-secret", AccessTokenExp: time.Hour, TokenIssuer: "placement.test", SigningMethod: "HS512"})
	wrongAlg, _, err := otherAlg.GenerateAccessToken("admin")
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin", Issuer: "placement.test"})
	noExpToken, err := noExp.SignedString([]byte("super-secret"))
	require.NoError(t, err)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "placement.test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubToken, err := noSub.SignedString([]byte("super-secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"expired":        expired,
		"tampered":       flipSignatureByte(t, valid),
		"wrong secret":   forged,
		"wrong issuer":   wrongIssuer,
		"wrong alg":      wrongAlg,
		"missing exp":    noExpToken,
		"missing sub":    noSubToken,
		"malformed":      "not.a.jwt",
		"empty":          "",
		"two segments":   "abc.def",
		"alg none style": "eyJhbGciOiJub25lIn0.eyJzdWIiOiJhZG1pbiJ9.",
	}

	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := s.ValidateToken(tok)
			assert.Nil(t, claims)
			assert.Equal(t, apperrors.ErrUnauthorized, err)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("bearer   abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bearer", "Bearer ", "Bearer    ", "Basic YWRtaW46YWRtaW4=", "abc.def.ghi"} {
		_, err := ExtractBearerToken(h)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "header %q", h)
	}
}
