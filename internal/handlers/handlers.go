package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"simplecrud/internal/config"
	"simplecrud/internal/repository"
	"simplecrud/internal/service"
)

// HandlerSet is the HTTP translation layer: it binds request bodies, calls
// the auth service or the user directory, and maps results to status codes.
// No business rules live here.
type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	auth      *service.AuthService
	directory *repository.UserDirectory
	started   time.Time
}

func NewHandlerSet(log zerolog.Logger, directory *repository.UserDirectory, cfg *config.AppConfig) HandlerSet {
	auth := service.NewAuthService(directory, cfg, log)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		auth:      auth,
		directory: directory,
		started:   time.Now(),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.POST("/register", h.RegisterUser)

	users := router.Group("/users")
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
}
