package middleware

import (
	"crypto/subtle"
	"errors"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/loddgo/loddgo-api/internal/api/handler/v1/response"
	"github.com/loddgo/loddgo-api/internal/config"
)

const AdminKeyHeader = "x-admin-key"

var (
	ErrAdminKeyNotConfigured = errors.New("ADMIN_KEY environment variable not configured")
	ErrInvalidAdminKey       = errors.New("invalid or missing admin key")
)

type adminCredentials struct {
	key  string
	hash []byte
}

func (c *adminCredentials) configured() bool {
	return c != nil && (c.key != "" || len(c.hash) > 0)
}

func (c *adminCredentials) matches(provided string) bool {
	if len(c.hash) > 0 {
		return bcrypt.CompareHashAndPassword(c.hash, []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.key), []byte(provided)) == 1
}

// AdminAuthenticator checks the shared admin secret. The secret can be
// swapped at runtime with Update.
type AdminAuthenticator struct {
	creds atomic.Pointer[adminCredentials]
}

func NewAdminAuthenticator(conf *config.AdminConfig) *AdminAuthenticator {
	a := &AdminAuthenticator{}
	a.Update(conf)
	return a
}

func (a *AdminAuthenticator) Update(conf *config.AdminConfig) {
	creds := &adminCredentials{}
	if conf != nil {
		creds.key = conf.Key
		if conf.KeyHash != "" {
			creds.hash = []byte(conf.KeyHash)
		}
	}

	a.creds.Store(creds)
	zap.L().Info("admin credentials loaded", zap.Bool("configured", creds.configured()), zap.Bool("hashed", len(creds.hash) > 0))
}

func (a *AdminAuthenticator) VerifyAdminKey() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		creds := a.creds.Load()
		if !creds.configured() {
			response.RenderErr(ctx, response.ErrInternalServerError(ErrAdminKeyNotConfigured))
			return
		}

		provided := ctx.GetHeader(AdminKeyHeader)
		if provided == "" || !creds.matches(provided) {
			response.RenderErr(ctx, response.ErrUnauthorized(ErrInvalidAdminKey))
			return
		}

		ctx.Next()
	}
}
