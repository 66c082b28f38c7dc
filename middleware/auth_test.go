package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhub/quill/config"
	"github.com/quillhub/quill/models"
	"github.com/quillhub/quill/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})
}

func actorEcho(ctx *gin.Context) {
	actor := Actor(ctx)
	ctx.JSON(http.StatusOK, gin.H{"id": actor.ID, "username": actor.Username})
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	r := gin.New()
	r.GET("/p", AuthRequired(), actorEcho)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := gin.New()
	r.GET("/p", AuthRequired(), actorEcho)

	for _, header := range []string{"Token abc", "Bearer", "Bearer  "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthRequiredResolvesActor(t *testing.T) {
	r := gin.New()
	r.GET("/p", AuthRequired(), func(ctx *gin.Context) {
		actor := Actor(ctx)
		assert.Equal(t, models.Actor{ID: 42, Username: "alice"}, actor)
		ctx.Status(http.StatusOK)
	})

	token, err := utils.GenerateToken(42, "alice", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequiredRejectsRevokedToken(t *testing.T) {
	r := gin.New()
	r.GET("/p", AuthRequired(), actorEcho)

	token, err := utils.GenerateToken(42, "alice", time.Hour)
	require.NoError(t, err)
	utils.BlacklistToken(token, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAnonymous(t *testing.T) {
	r := gin.New()
	r.GET("/p", OptionalAuth(), func(ctx *gin.Context) {
		assert.Equal(t, models.Anonymous, Actor(ctx))
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthResolvesActorWhenPresent(t *testing.T) {
	r := gin.New()
	r.GET("/p", OptionalAuth(), func(ctx *gin.Context) {
		assert.Equal(t, uint(7), Actor(ctx).ID)
		ctx.Status(http.StatusOK)
	})

	token, err := utils.GenerateToken(7, "bob", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
