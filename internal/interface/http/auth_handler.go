package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkwell/internal/application"
	"inkwell/internal/interface/middleware"
	"inkwell/pkg/helpers"
	"inkwell/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
	Prod    bool
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger, prod bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger, Prod: prod}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,username"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,pwd"`
}

// Register POST /api/auth/register
// Creates the account and opens a session in the same call: the token is set
// as a cookie and echoed in the body for header-based clients.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, token, exp, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	response.Success(c, http.StatusCreated, gin.H{"user": u.Ref(), "token": token}, "registered")
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, token, exp, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	response.Success(c, http.StatusOK, gin.H{"user": u.Ref(), "token": token}, "logged in")
}

// Me GET /api/auth/me (auth required)
// Returns the caller's own account, email included.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":  u.Ref(),
		"email": u.Email,
	}, "ok")
}

// Logout POST /api/auth/logout (auth required)
// Tokens are stateless, so logout only clears the cookie; an already-issued
// token stays valid until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

// ChangePassword PUT /api/auth/password (auth required)
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	err := h.Svc.ChangePassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password changed")
}
