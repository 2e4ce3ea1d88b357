package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

// ETag はコンテンツのxxhashから強いETag値を生成します。
func ETag(content []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(content))
}

// WriteWithETag はETagを付与してコンテンツを書き込みます。
// If-None-Match が一致した場合は304を返し本文を送りません。
func WriteWithETag(c *gin.Context, contentType string, content []byte) {
	tag := ETag(content)
	c.Header("ETag", tag)
	c.Header("Cache-Control", "no-cache")

	if match := c.GetHeader("If-None-Match"); match != "" {
		for _, candidate := range strings.Split(match, ",") {
			if strings.TrimSpace(candidate) == tag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}
	c.Data(http.StatusOK, contentType, content)
}
