package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/BerniceZTT/crm_local/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger 日志中间件
//
// 为每个请求生成requestId，记录请求和响应的概要信息。
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// 请求标识，写入上下文和响应头便于排查
		requestId := uuid.NewString()
		c.Set("requestId", requestId)
		c.Header("X-Request-Id", requestId)

		// 记录请求体
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			// 恢复请求体以便后续处理
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		// 记录请求信息
		utils.LogApiRequest(
			requestId,
			method,
			path,
			c.Request.URL.Query(),
			string(requestBody),
		)

		// 处理请求
		c.Next()

		// 记录响应信息
		utils.LogApiResponse(
			requestId,
			method,
			path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery 恢复中间件
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// 记录崩溃信息
		utils.Logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("服务崩溃")

		// 返回500错误
		c.AbortWithStatusJSON(500, gin.H{
			"success": false,
			"error":   "服务器内部错误",
		})
	})
}
