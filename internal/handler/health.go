package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/tasks/internal/model"
)

const welcomeMessage = "Welcome to Task Management System API"

// 헬스체크 엔드포인트
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// 루트 엔드포인트
// @Summary API welcome
// @Tags system
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func Root(apiPrefix string) gin.HandlerFunc {
	body := model.RootResponse{
		Message: welcomeMessage,
		Docs:    apiPrefix + "/docs",
		OpenAPI: apiPrefix + "/openapi.json",
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}
