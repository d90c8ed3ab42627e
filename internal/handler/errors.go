package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/tasks/internal/apperr"
	"github.com/kube-rca/tasks/internal/model"
	"go.uber.org/zap"
)

const msgInternalError = "Internal server error"

// writeError - 도메인 에러를 상태 코드와 {"detail", "additional_info"} 응답으로 변환
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error("unhandled error",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Detail: msgInternalError})
		return
	}

	status := appErr.Kind.HTTPStatus()
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("request_id", GetRequestID(c)),
			zap.String("kind", appErr.Kind.String()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, model.ErrorResponse{
		Detail:         appErr.Message,
		AdditionalInfo: appErr.Detail,
	})
}

// writeBindError reports a malformed request body or parameter as 422.
func writeBindError(c *gin.Context, log *zap.Logger, err error) {
	writeError(c, log, apperr.Validation(err.Error()))
}

func recoveryHandler(log *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Detail: msgInternalError})
	}
}
