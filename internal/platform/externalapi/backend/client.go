package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"empresas_admin/internal/platform/externalapi/backend/dto"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/platform/observability"
	"empresas_admin/internal/platform/ratelimiter"
	"empresas_admin/internal/shared/apperror"
)

// Subject はサービストークンの sub クレームです。
const Subject = "empresas-admin"

// TokenSource はサービストークンを発行します。
type TokenSource interface {
	GenerateToken(subject string) (string, error)
}

// CallObserver はバックエンド呼び出しのメトリクスを記録します。
type CallObserver interface {
	ObserveBackendCall(method, endpoint string, err error, d time.Duration)
}

// Client はリモートAPIへの共通呼び出し処理を持ちます。
// リソースごとの操作は EmpresaAPI / ProveedorAPI が提供します。
type Client struct {
	cfg      Config
	client   *http.Client
	tokens   TokenSource
	observer CallObserver
	tracer   *observability.Tracer
	limiter  ratelimiter.Limiter
}

// Option は Client の任意設定です。
type Option func(*Client)

// WithTokenSource は Authorization: Bearer ヘッダーの発行元を設定します。
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithObserver は呼び出しメトリクスの記録先を設定します。
func WithObserver(o CallObserver) Option {
	return func(c *Client) { c.observer = o }
}

// WithTracer はスパンの生成元を設定します。
func WithTracer(t *observability.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithLimiter は呼び出し頻度の制限を設定します。
func WithLimiter(l ratelimiter.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient は指定された設定とHTTPクライアントで Client を生成します。
func NewClient(cfg Config, client *http.Client, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		client: client,
		tracer: observability.NewTracer(nil),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do は1回のREST呼び出しを実行し、成功時は out に datos をデコードして mensaje を返します。
// endpoint はメトリクス・スパン用のパステンプレート（例: "/empresas/:id"）です。
// HTTP 400以上は *apperror.Error を返します。
func (c *Client) do(ctx context.Context, method, endpoint, path string, in, out any) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	start := time.Now()
	timing := observability.StartServerTiming(ctx, "backend", method+" "+endpoint)
	ctx, span := c.tracer.StartBackendCall(ctx, method, endpoint)

	status, msg, err := c.roundTrip(ctx, method, path, in, out)

	timing.Stop()
	c.tracer.EndBackendCall(span, status, err)
	if c.observer != nil {
		c.observer.ObserveBackendCall(method, endpoint, err, time.Since(start))
	}

	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn("backend call failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Error(err),
		)
		return "", err
	}
	log.Debug("backend call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return msg, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) (int, string, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, "", fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.GenerateToken(Subject)
		if err != nil {
			return 0, "", fmt.Errorf("service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.FromContext(ctx).Warn("failed to close response body", zap.Error(err))
		}
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode >= 400 {
		var eb dto.ErrorBody
		// 本文がJSONでなくてもステータスだけで失敗とする
		_ = json.Unmarshal(raw, &eb)
		return res.StatusCode, "", apperror.New(res.StatusCode, eb.Mensaje)
	}

	env := dto.Envelope[json.RawMessage]{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return res.StatusCode, "", fmt.Errorf("decode response: %w", err)
		}
	}
	// datos が null の場合 out はゼロ値のまま
	if out != nil && len(env.Datos) > 0 && string(env.Datos) != "null" {
		if err := json.Unmarshal(env.Datos, out); err != nil {
			return res.StatusCode, "", fmt.Errorf("decode datos: %w", err)
		}
	}
	return res.StatusCode, env.Mensaje, nil
}
