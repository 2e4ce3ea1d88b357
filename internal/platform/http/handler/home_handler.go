package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Inicio はメニューと案内文だけのトップページを表示します。
func Inicio(c *gin.Context) {
	c.HTML(http.StatusOK, "inicio.html", gin.H{"Title": "Inicio"})
}
