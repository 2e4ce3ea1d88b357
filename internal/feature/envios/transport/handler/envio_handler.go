// Package handler はフォーム送信結果（envio）の表示と確認を処理します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/shared/submission"
	"empresas_admin/internal/shared/view"
)

// Envios は送信トークンの状態を参照・解放します。
type Envios interface {
	Lookup(ctx context.Context, token string) (submission.State, *submission.Outcome, error)
	Dismiss(ctx context.Context, token string) error
}

// EnvioHandler は送信結果のダイアログを処理します。
type EnvioHandler struct {
	envios Envios
}

// NewEnvioHandler は EnvioHandler を生成します。
func NewEnvioHandler(envios Envios) *EnvioHandler {
	return &EnvioHandler{envios: envios}
}

type envioPage struct {
	Title   string
	Pending bool
	Dialog  *view.Dialog
}

// Show は保存済みの送信結果を表示します。未使用または解放済みのトークンはトップへ戻します。
//
// GET /envios/:token
func (h *EnvioHandler) Show(c *gin.Context) {
	token := c.Param("token")
	page := envioPage{Title: "Resultado del envio"}

	state, out, err := h.envios.Lookup(c.Request.Context(), token)
	if err != nil {
		logger.FromGin(c).Error("failed to look up submission", zap.String("token", token), zap.Error(err))
		page.Dialog = view.Failure("No se pudo conectar al servidor")
		c.HTML(http.StatusInternalServerError, "envio.html", page)
		return
	}

	switch state {
	case submission.StateSubmitting:
		page.Pending = true
		c.HTML(http.StatusOK, "envio.html", page)
	case submission.StateDone:
		msg := submission.DefaultSuccessMessage
		if out != nil {
			msg = out.Message
		}
		page.Dialog = view.Success(msg, token)
		c.HTML(http.StatusOK, "envio.html", page)
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// Close は成功ダイアログの確認でトークンを解放し、トップへ移動します。
//
// POST /envios/:token/cerrar
func (h *EnvioHandler) Close(c *gin.Context) {
	token := c.Param("token")
	if err := h.envios.Dismiss(c.Request.Context(), token); err != nil {
		logger.FromGin(c).Warn("failed to dismiss submission", zap.String("token", token), zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}
