package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/radu-bors/Clique-backend/auth"
	"github.com/radu-bors/Clique-backend/handlers"
	"github.com/radu-bors/Clique-backend/middleware"
)

func SetupRouter(gate *auth.Service) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Credential endpoints are rate limited against brute forcing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes (no session required)
	router.POST("/api/register", loginLimiter.Middleware(), handlers.Register)
	router.POST("/api/login", loginLimiter.Middleware(), handlers.Login)
	router.GET("/api/vapid-public-key", handlers.GetVapidPublicKey)

	// Protected routes: everything below passes the session gate first.
	protected := router.Group("/api")
	protected.Use(middleware.SessionAuth(gate))

	// Profile
	protected.GET("/me", handlers.GetMyProfile)
	protected.PUT("/me", handlers.UpdateMyProfile)
	protected.PUT("/me/location", handlers.UpdateMyLocation)
	protected.GET("/user/:id", handlers.GetUser)
	protected.POST("/upload-photo", handlers.UploadPhoto)

	// Activity catalog
	protected.GET("/activities", handlers.ListActivities)

	// Events and matching
	protected.POST("/events", handlers.CreateEvent)
	protected.POST("/events/filter", handlers.FilterEvents)
	protected.POST("/events/:id/join", handlers.RequestToJoin)
	protected.POST("/events/:id/accept", handlers.AcceptParticipant)
	protected.POST("/events/:id/remove", handlers.RemoveParticipant)
	protected.POST("/events/:id/close", handlers.CloseEvent)
	protected.GET("/matches", handlers.DidIMatch)

	// Chats
	protected.GET("/chats/:chatId", handlers.GetChat)
	protected.POST("/chats/:chatId", handlers.PostChatMessage)

	// Push subscriptions
	protected.POST("/subscribe", handlers.SubscribePush)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
