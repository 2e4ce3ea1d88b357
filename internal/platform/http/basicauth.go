package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth は管理画面を HTTP Basic 認証で保護するGinミドルウェアです。
// パスワードは bcrypt ハッシュと比較します。user が空なら認証を行いません。
func BasicAuth(user, passwordHash string) gin.HandlerFunc {
	if user == "" {
		return func(c *gin.Context) { c.Next() }
	}
	hash := []byte(passwordHash)

	return func(c *gin.Context) {
		u, p, ok := c.Request.BasicAuth()
		if ok && subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1 &&
			bcrypt.CompareHashAndPassword(hash, []byte(p)) == nil {
			c.Next()
			return
		}
		c.Header("WWW-Authenticate", `Basic realm="empresas-admin", charset="UTF-8"`)
		c.AbortWithStatus(http.StatusUnauthorized)
	}
}
