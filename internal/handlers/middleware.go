package handlers

import (
	"net/http"
	"strings"

	"book_catalog/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserKey      = "currentUser"
	ctxRequestIDKey = "requestId"

	headerRequestID = "X-Request-ID"
)

// authMiddleware resolves the bearer token into the acting user and stores it
// in the request context. A valid token for a since-deleted user fails closed.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.unauthorized(c, "missing Authorization header")
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		h.unauthorized(c, "invalid Authorization header format")
		return
	}

	user, err := h.services.Authorization.ResolveUser(c.Request.Context(), parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "request_id", requestID(c), "err", err)
		}
		h.unauthorized(c, "could not validate credentials")
		return
	}

	c.Set(ctxUserKey, user)
	c.Next()
}

// unauthorized writes a 401 with the re-auth challenge header.
func (h *Handler) unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// currentUser returns the user resolved by authMiddleware, or nil on
// unprotected routes.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// requestIDMiddleware tags every request with an id for log correlation.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	rid := uuid.NewString()
	c.Set(ctxRequestIDKey, rid)
	c.Header(headerRequestID, rid)
	c.Next()
}

func requestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

// corsMiddleware implements the fixed allow-list for local development
// frontends. Origins outside the list get no CORS headers; preflights are
// answered without reaching the handlers.
func (h *Handler) corsMiddleware(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin != "" {
		if _, ok := h.origins[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Credentials", "true")
		}
	}

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
