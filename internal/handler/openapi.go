package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/tasks/docs"
)

// OpenAPIDoc returns the generated OpenAPI document.
func OpenAPIDoc(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
}

// DocsRedirect points the docs link at the raw document.
func DocsRedirect(openAPIPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, openAPIPath)
	}
}
