package modules

import (
	"github.com/gin-gonic/gin"

	handlers "inkwell/internal/interface/http"
	"inkwell/internal/interface/middleware"
	"inkwell/pkg/helpers"
)

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Static /users/search wins over /users/:id in gin's route tree.
	rg.GET("/users/search", m.Handler.Search)
	rg.GET("/users/:id", m.Handler.Profile)
	rg.GET("/users/:id/followers", m.Handler.Followers)
	rg.GET("/users/:id/following", m.Handler.Following)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/users/:id/follow", m.Handler.Follow)
	}
}
