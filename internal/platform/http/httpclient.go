// Package http は外部API呼び出し用のHTTPクライアントと共通ヘルパーを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はバックエンドAPI呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト
//   - MaxIdleConns / MaxIdleConnsPerHost: 同一バックエンドへの接続を再利用するため多めに確保
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//   - リクエストIDの伝播: コンテキストに X-Request-ID があればヘッダーに付与
//
// http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &requestIDTransport{next: t}}
}

// requestIDTransport はコンテキストのリクエストIDを送信ヘッダーに写します。
type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := RequestIDFromContext(req.Context())
	if id == "" || req.Header.Get(RequestIDHeader) != "" {
		return t.next.RoundTrip(req)
	}
	// RoundTripper は元のリクエストを変更してはならない
	clone := req.Clone(req.Context())
	clone.Header.Set(RequestIDHeader, id)
	return t.next.RoundTrip(clone)
}
