// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"corevitals-go/internal/middleware"
	"corevitals-go/internal/service"
	"corevitals-go/pkg/gateway"
	"corevitals-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// 面向用户的错误提示，不包含任何上游细节。
const (
	msgInvalidRequest  = "请求参数无效"
	msgUpstreamFailed  = "AI 服务暂时不可用，请稍后重试"
	msgUpstreamTimeout = "AI 服务响应超时，请稍后重试"
	msgInternal        = "服务器内部错误"
)

func success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": message, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"code": status, "message": message, "data": nil})
}

// classify 把业务与网关错误映射为 HTTP 状态码和通用提示。
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, gateway.ErrInvalidInput):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, service.ErrSystemNotFound):
		return http.StatusNotFound, "未找到对应的身体系统"
	case errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest, "无效的状态过滤条件"
	}

	var te *gateway.TransportError
	if errors.As(err, &te) {
		if te.Timeout() {
			return http.StatusGatewayTimeout, msgUpstreamTimeout
		}
		return http.StatusBadGateway, msgUpstreamFailed
	}
	var ue *gateway.UpstreamError
	if errors.As(err, &ue) || errors.Is(err, gateway.ErrMalformedResponse) {
		return http.StatusBadGateway, msgUpstreamFailed
	}
	return http.StatusInternalServerError, msgInternal
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrEmptyConversation):
		return "对话内容不能为空"
	case errors.Is(err, gateway.ErrConversationTooLong):
		return "对话轮数超过上限"
	case errors.Is(err, gateway.ErrInvalidRole):
		return "消息角色只能是 user、assistant 或 system"
	case errors.Is(err, gateway.ErrEmptyText):
		return "文本内容不能为空"
	case errors.Is(err, gateway.ErrTextTooLong):
		return "文本内容过长"
	case errors.Is(err, gateway.ErrEmptyRecipient):
		return "收件人姓名不能为空"
	}
	return msgInvalidRequest
}

// respondError 记录原始错误，只把通用提示返回给客户端。
func respondError(c *gin.Context, op string, err error) {
	status, message := classify(err)
	fields := []interface{}{"requestId", middleware.RequestID(c), "op", op, "status", status, "error", err}
	if status >= http.StatusInternalServerError {
		log.Errorw("请求处理失败", fields...)
	} else {
		log.Warnw("请求被拒绝", fields...)
	}
	fail(c, status, message)
}

// badRequest 处理请求体绑定失败。
func badRequest(c *gin.Context, op string, err error) {
	log.Warnf("%s: Invalid request payload, error: %v", op, err)
	fail(c, http.StatusBadRequest, msgInvalidRequest)
}
