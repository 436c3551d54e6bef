package handlers

import (
	"errors"
	"net/http"

	"book_catalog/internal/logger"
	"book_catalog/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	origins  map[string]struct{} // CORS allow-list
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigins []string) *Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}
	return &Handler{services: services, log: log, origins: origins}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware, h.corsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	router.POST("/login", h.login)

	h.registerUserRoutes(router)
	h.registerBookRoutes(router)
	h.registerVoteRoutes(router)

	// Live catalog feed, HTTP upgrade on the same port
	router.GET("/ws", h.liveCatalog)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.GET("", h.getUsers)
		users.GET("/:id", h.getUser)
		users.GET("/:id/books", h.getUserBooks)
		users.POST("", h.createUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

func (h *Handler) registerBookRoutes(r *gin.Engine) {
	books := r.Group("/books")
	{
		books.GET("", h.listBooks)
		books.GET("/:id", h.getBook)
	}
	// Mutations require a resolved bearer identity.
	owned := r.Group("/books", h.authMiddleware)
	{
		owned.POST("", h.createBook)
		owned.PUT("/:id", h.updateBook)
		owned.PATCH("/:id", h.updateBook)
		owned.DELETE("/:id", h.deleteBook)
	}
}

func (h *Handler) registerVoteRoutes(r *gin.Engine) {
	votes := r.Group("/votes", h.authMiddleware)
	{
		votes.POST("/", h.castVote)
	}
}

// @Summary      Root
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello, World!"})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError maps a domain error to its HTTP status and reason string.
// Unknown errors become an opaque 500 and get logged with the request id.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError && h.log != nil {
		fields := append([]interface{}{"err", err, "request_id", requestID(c)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(status, gin.H{"error": msg})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		return http.StatusNotFound, "Book not found"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrVoteNotFound):
		return http.StatusNotFound, "Vote does not exist"
	case errors.Is(err, service.ErrVoteExists):
		return http.StatusConflict, "Vote already exists"
	case errors.Is(err, service.ErrUserExists):
		return http.StatusBadRequest, "User with this email or username already exists"
	case errors.Is(err, service.ErrEmailExists):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, service.ErrUsernameExists):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusForbidden, "Invalid credentials"
	case errors.Is(err, service.ErrBadDirection):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
