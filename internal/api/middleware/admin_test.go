package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/loddgo/loddgo-api/internal/config"
)

func newAdminRouter(a *AdminAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin", a.VerifyAdminKey(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func doAdmin(r *gin.Engine, key string) int {
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if key != "" {
		req.Header.Set(AdminKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAdminAuthenticator_PlainKey(t *testing.T) {
	r := newAdminRouter(NewAdminAuthenticator(&config.AdminConfig{Key: "s3cret"}))

	assert.Equal(t, http.StatusNoContent, doAdmin(r, "s3cret"))
	assert.Equal(t, http.StatusUnauthorized, doAdmin(r, "wrong"))
	assert.Equal(t, http.StatusUnauthorized, doAdmin(r, ""))
}

func TestAdminAuthenticator_HashedKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	r := newAdminRouter(NewAdminAuthenticator(&config.AdminConfig{Key: "ignored", KeyHash: string(hash)}))

	assert.Equal(t, http.StatusNoContent, doAdmin(r, "s3cret"))
	assert.Equal(t, http.StatusUnauthorized, doAdmin(r, "ignored"))
}

func TestAdminAuthenticator_NotConfigured(t *testing.T) {
	r := newAdminRouter(NewAdminAuthenticator(&config.AdminConfig{}))

	assert.Equal(t, http.StatusInternalServerError, doAdmin(r, "anything"))
}

func TestAdminAuthenticator_Update(t *testing.T) {
	a := NewAdminAuthenticator(&config.AdminConfig{Key: "old"})
	r := newAdminRouter(a)

	a.Update(&config.AdminConfig{Key: "new"})

	assert.Equal(t, http.StatusUnauthorized, doAdmin(r, "old"))
	assert.Equal(t, http.StatusNoContent, doAdmin(r, "new"))
}
