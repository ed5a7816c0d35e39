package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkwell/internal/application"
	"inkwell/internal/interface/middleware"
	"inkwell/pkg/response"
)

type UserHandler struct {
	Auth   *application.AuthService
	Social *application.SocialService
	Logger *logrus.Logger
	Prod   bool
}

func NewUserHandler(auth *application.AuthService, social *application.SocialService, logger *logrus.Logger, prod bool) *UserHandler {
	return &UserHandler{Auth: auth, Social: social, Logger: logger, Prod: prod}
}

// Profile GET /api/users/:id
// Public view: identity, social edges, and recent published posts. Drafts
// and the password hash never appear here.
func (h *UserHandler) Profile(c *gin.Context) {
	p, err := h.Social.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, p, "ok")
}

// Follow POST /api/users/:id/follow (auth required)
// Toggles the mutual follow edge between the caller and :id.
func (h *UserHandler) Follow(c *gin.Context) {
	state, err := h.Social.ToggleFollow(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, state, "ok")
}

// Followers GET /api/users/:id/followers
func (h *UserHandler) Followers(c *gin.Context) {
	h.edges(c, false)
}

// Following GET /api/users/:id/following
func (h *UserHandler) Following(c *gin.Context) {
	h.edges(c, true)
}

func (h *UserHandler) edges(c *gin.Context, following bool) {
	refs, err := h.Social.FollowerList(c.Request.Context(), c.Param("id"), following)
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, refs, "ok")
}

// Search GET /api/users/search?q=...&size=n
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size := 10
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 50 {
			response.Error(c, http.StatusBadRequest, "invalid size", nil)
			return
		}
		size = n
	}
	refs, err := h.Auth.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, refs, "ok")
}
