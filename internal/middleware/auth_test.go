package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(&config.JWTConfig{Secret: secret}), func(c *gin.Context) {
		id, _ := util.CurrentUserID(c)
		key, _ := c.Get(security.RateLimitKey)
		c.JSON(http.StatusOK, gin.H{"id": id, "key": key})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	token, err := util.GenerateJWT(9, "", secret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":9,"key":"user:9"}`, w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := newRouter()

	for name, header := range map[string]string{
		"missing": "",
		"garbage": "Bearer not-a-token",
		"empty":   "Bearer ",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}
