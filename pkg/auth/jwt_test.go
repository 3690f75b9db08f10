package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfig(t *testing.T, secret string, ttl time.Duration) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{JWTSecret: secret, GameTokenTTL: ttl}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGameTokenRoundTrip(t *testing.T) {
	useConfig(t, "test-secret", time.Hour)

	token, err := GenerateGameToken("game-42")
	require.NoError(t, err)

	claims, err := ValidateGameToken(token)
	require.NoError(t, err)
	assert.Equal(t, "game-42", claims.GameID)
	assert.Equal(t, "game-42", claims.Subject)
}

func TestExpiredGameToken(t *testing.T) {
	useConfig(t, "test-secret", -time.Minute)

	token, err := GenerateGameToken("game-42")
	require.NoError(t, err)

	_, err = ValidateGameToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGameTokenWrongSecret(t *testing.T) {
	useConfig(t, "first-secret", time.Hour)
	token, err := GenerateGameToken("game-42")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "second-secret"
	_, err = ValidateGameToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestGameTokenRejectsOtherSigningMethods(t *testing.T) {
	useConfig(t, "test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &GameClaims{GameID: "game-42"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateGameToken(token)
	assert.Error(t, err)
}

func TestGameTokenWithoutGameID(t *testing.T) {
	useConfig(t, "test-secret", time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &GameClaims{}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateGameToken(token)
	assert.Error(t, err)
}
