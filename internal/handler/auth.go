package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/kube-rca/tasks/internal/model"
	"go.uber.org/zap"
)

const grantTypePassword = "password"

// authService - 회원가입/로그인 서비스 인터페이스
type authService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.Token, error)
}

type AuthHandler struct {
	svc authService
	log *zap.Logger
}

func NewAuthHandler(svc authService, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{svc: svc, log: log}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Username and password"
// @Success 200 {object} model.User
// @Failure 409 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login
// @Description OAuth2 password grant. Returns a bearer access token.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param grant_type formData string false "Must be password when present"
// @Success 200 {object} model.Token
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form model.LoginForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		writeBindError(c, h.log, err)
		return
	}
	if form.GrantType != "" && form.GrantType != grantTypePassword {
		writeBindError(c, h.log, errors.New(`grant_type must be "password"`))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, token)
}
