package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextSubject は検証済みトークンの sub をGinコンテキストに保存するキーです。
const ContextSubject = "jwtSubject"

// AuthRequired はBearerトークンを検証するGinミドルウェアを返します。
// 応答は開発用バックエンドのエンベロープ形式 {datos, mensaje} に合わせます。
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"datos": nil, "mensaje": "Token requerido"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"datos": nil, "mensaje": "Servidor mal configurado"})
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			// HMAC以外は拒否
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"datos": nil, "mensaje": "Token inválido"})
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}
