package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"learnit/internal/service"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	posts          service.PostService
	tokens         TokenVerifier
	logger         logrus.FieldLogger
	allowedOrigins []string
}

func NewHandler(users service.UserService, posts service.PostService, tokens TokenVerifier, logger logrus.FieldLogger, allowedOrigins []string) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:          users,
		posts:          posts,
		tokens:         tokens,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware(h.allowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})

		account := api.Group("/auth")
		account.POST("/register", h.register)
		account.POST("/login", h.login)

		posts := api.Group("/post", RequireAuth(h.tokens))
		posts.GET("", h.listPosts)
		posts.POST("", h.createPost)
		posts.PUT("/:id", h.updatePost)
		posts.DELETE("/:id", h.deletePost)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}
