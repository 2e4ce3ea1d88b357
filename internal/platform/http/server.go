package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout は終了シグナル受信後に処理中のリクエストを待つ上限です。
const ShutdownTimeout = 15 * time.Second

// Serve は ctx がキャンセルされるまで h を提供し、その後グレースフルに停止します。
func Serve(ctx context.Context, ln net.Listener, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("http server gracefully stopped")
	return nil
}

// ListenAndServe は :port で待ち受けて Serve を実行します。
func ListenAndServe(ctx context.Context, port string, h http.Handler, log *zap.Logger) error {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h, log)
}
