// Package jwtmw はバックエンドAPIとのサービス間認証に使うJWTの発行と検証を提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret はシークレット未設定で署名しようとした場合のエラーです。
var ErrEmptySecret = errors.New("jwt secret is empty")

// Generator はサービストークンを発行します。
type Generator interface {
	// GenerateToken は subject を sub クレームに持つ署名済みトークンを返します。
	GenerateToken(subject string) (string, error)
}

// HS256Generator は HMAC-SHA256 で署名する Generator 実装です。
type HS256Generator struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewGenerator はシークレット・有効期間・発行者を指定して Generator を作成します。
func NewGenerator(secret string, expiration time.Duration, issuer string) *HS256Generator {
	return &HS256Generator{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
		now:        time.Now,
	}
}

// GenerateToken は HS256 で署名した RegisteredClaims トークンを生成します。
func (g *HS256Generator) GenerateToken(subject string) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrEmptySecret
	}
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    g.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

var _ Generator = (*HS256Generator)(nil)
