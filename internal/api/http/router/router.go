package router

import (
	"github.com/gin-gonic/gin"

	"github.com/phananhtu/authcore/internal/api/http/handler"
	"github.com/phananhtu/authcore/internal/api/http/middleware"
	"github.com/phananhtu/authcore/internal/logger"
	"github.com/phananhtu/authcore/internal/model"
	"github.com/phananhtu/authcore/internal/revocation"
	"github.com/phananhtu/authcore/internal/service"
	"github.com/phananhtu/authcore/internal/session"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authService *service.Auth
	storage     model.Storage
	tokens      model.TokenManager
	sessions    *session.Cache
	revocations *revocation.Registry
	logger      *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	storage model.Storage,
	tokens model.TokenManager,
	sessions *session.Cache,
	revocations *revocation.Registry,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService: authService,
		storage:     storage,
		tokens:      tokens,
		sessions:    sessions,
		revocations: revocations,
		logger:      logger,
	}
}

// Register builds the engine with all routes and middleware. Login and
// health are public; everything else requires a verified token.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.sessions, r.revocations, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle())

	authHandler := handler.NewAuth(r.authService, r.logger)
	imageHandler := handler.NewImage(r.storage, r.logger)

	engine.GET("/health", handler.Health)

	auth := engine.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authenticate.HandleRefresh(), authHandler.Refresh)

	protected := auth.Group("")
	protected.Use(authenticate.Handle())
	protected.POST("/logout", authHandler.Logout)
	protected.POST("/password", authHandler.ChangePassword)

	engine.GET("/images/:name", authenticate.Handle(), imageHandler.Get)

	return engine
}
