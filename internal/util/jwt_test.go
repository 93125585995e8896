package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "a@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestParseJWTRejects(t *testing.T) {
	expired, err := GenerateJWT(1, "", testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, testSecret)
	assert.Error(t, err)

	valid, err := GenerateJWT(1, "", testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(valid, "another-secret")
	assert.Error(t, err)

	noUser, err := GenerateJWT(0, "", testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(noUser, testSecret)
	assert.Error(t, err)

	// 非 HS256 签名
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{UserID: 1}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseJWT(hs512, testSecret)
	assert.Error(t, err)
}

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := CurrentUserID(c)
	assert.False(t, ok)

	c.Set(ContextUserKey, &Claims{UserID: 7})
	id, ok := CurrentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
}
