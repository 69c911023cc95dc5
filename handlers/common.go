package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/auth"
	"github.com/radu-bors/Clique-backend/engine"
	"github.com/radu-bors/Clique-backend/store"
	"github.com/radu-bors/Clique-backend/websocket"
)

// Shared handler dependencies, wired once from main.
var (
	gate      *auth.Service
	matcher   *engine.Engine
	dataStore store.Store
	wsManager *websocket.Manager
)

const fallbackPhoto = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"

// Init wires the handler package to its collaborators.
func Init(s store.Store, a *auth.Service, e *engine.Engine) {
	dataStore = s
	gate = a
	matcher = e
}

// SetWebSocketManager sets the global WebSocket manager.
func SetWebSocketManager(manager *websocket.Manager) {
	wsManager = manager
}

// currentUserID reads the authenticated user id the session middleware put
// in the context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userIDStr := c.GetString("userId")
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

// respondError maps the shared error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, engine.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not allowed"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, engine.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	default:
		log.Printf("[handlers] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
