package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "inkwell/internal/interface/http"
	"inkwell/internal/interface/middleware"
	"inkwell/pkg/helpers"
)

type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager, rdb *redis.Client) *PostModule {
	return &PostModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	// Reads are public; the gate applies to writes only.
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/posts", m.Handler.Create)
		auth.POST("/posts/upload-image", m.Handler.UploadImage)
		auth.PATCH("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.POST("/posts/:id/like", m.Handler.Like)
		auth.POST("/posts/:id/dislike", m.Handler.Dislike)
		auth.POST("/posts/:id/comments", m.Handler.Comment)
	}
}
