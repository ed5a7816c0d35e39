package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkwell/internal/application"
	"inkwell/internal/domain/repository"
	"inkwell/internal/interface/middleware"
	"inkwell/pkg/response"
)

type PostHandler struct {
	Posts  *application.PostService
	Social *application.SocialService
	Logger *logrus.Logger
	Prod   bool
}

func NewPostHandler(posts *application.PostService, social *application.SocialService, logger *logrus.Logger, prod bool) *PostHandler {
	return &PostHandler{Posts: posts, Social: social, Logger: logger, Prod: prod}
}

type createPostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status" binding:"omitempty,poststatus"`
	ImageURL string   `json:"image_url"`
}

// Create POST /api/posts (auth required)
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := h.Posts.Create(c.Request.Context(), middleware.UserID(c), application.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Status:   req.Status,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "post created")
}

// List GET /api/posts
// Optional filters: ?status=draft|published, ?author=<user id>, ?limit=n.
// Without filters every post is returned, drafts included.
func (h *PostHandler) List(c *gin.Context) {
	f := repository.PostFilter{
		Status:   c.Query("status"),
		AuthorID: c.Query("author"),
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		f.Limit = n
	}
	posts, err := h.Posts.List(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "ok")
}

// Get GET /api/posts/:id
// Every successful read counts a view and returns the post with its comments.
func (h *PostHandler) Get(c *gin.Context) {
	p, comments, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": p, "comments": comments}, "ok")
}

type updatePostRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Status   *string   `json:"status"`
	ImageURL *string   `json:"image_url"`
}

// Update PATCH /api/posts/:id (auth required, owner only)
// Sparse patch: absent fields keep their stored value.
func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := h.Posts.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), application.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Status:   req.Status,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post updated")
}

// Delete DELETE /api/posts/:id (auth required, owner only)
func (h *PostHandler) Delete(c *gin.Context) {
	err := h.Posts.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "post deleted")
}

// Like POST /api/posts/:id/like (auth required)
func (h *PostHandler) Like(c *gin.Context) {
	h.react(c, h.Social.ToggleLike)
}

// Dislike POST /api/posts/:id/dislike (auth required)
func (h *PostHandler) Dislike(c *gin.Context) {
	h.react(c, h.Social.ToggleDislike)
}

func (h *PostHandler) react(c *gin.Context, toggle func(ctx context.Context, actorID, postID string) (application.ReactionResult, error)) {
	res, err := toggle(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, res, "ok")
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Comment POST /api/posts/:id/comments (auth required)
func (h *PostHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	cm, err := h.Social.AddComment(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Content)
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "comment added")
}

// UploadImage POST /api/posts/upload-image (auth required)
// Accepts a multipart "image" part and returns the public URL of the stored
// object for use as a cover image.
func (h *PostHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cannot read uploaded file", nil)
		return
	}
	defer f.Close()

	url, err := h.Posts.UploadImage(c.Request.Context(), middleware.UserID(c), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(c, h.Logger, h.Prod, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "image uploaded")
}
