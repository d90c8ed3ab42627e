package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/tasks/internal/config"
	"github.com/kube-rca/tasks/internal/model"
	"github.com/kube-rca/tasks/internal/service"
	"go.uber.org/zap"
)

// Services - 라우터가 사용하는 서비스 묶음
type Services struct {
	Auth  *service.AuthService
	Tasks *service.TaskService
}

// NewRouter builds the gin engine with every route mounted under cfg.APIPrefix.
func NewRouter(cfg config.ServerConfig, svcs Services, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(recoveryHandler(log)),
		RequestIDMiddleware(),
		TracingMiddleware(),
		RequestLogger(log),
		CORSMiddleware(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Detail: "Not Found"})
	})

	prefix := cfg.APIPrefix
	r.GET("/", Root(prefix))
	r.GET("/ping", Ping)

	authHandler := NewAuthHandler(svcs.Auth, log)
	taskHandler := NewTaskHandler(svcs.Tasks, log)

	api := r.Group(prefix)
	api.GET("/openapi.json", OpenAPIDoc)
	api.GET("/docs", DocsRedirect(prefix+"/openapi.json"))
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	tasks := api.Group("/tasks", AuthMiddleware(svcs.Auth, log))
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.ListTasks)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	return r
}
