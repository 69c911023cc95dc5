package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/radu-bors/Clique-backend/auth"
	"github.com/radu-bors/Clique-backend/database"
	"github.com/radu-bors/Clique-backend/engine"
	"github.com/radu-bors/Clique-backend/handlers"
	"github.com/radu-bors/Clique-backend/routes"
	"github.com/radu-bors/Clique-backend/store/mongostore"
	"github.com/radu-bors/Clique-backend/websocket"
)

func main() {
	log.Println("🚀 Starting Clique Backend Server...")

	// .env is optional; production reads real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if os.Getenv("MONGODB_URI") == "" {
		log.Fatal("❌ MONGODB_URI must be set")
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.Connect(); err != nil {
			dbErr = err
			log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", dbErr)
	}
	defer database.Disconnect()

	// ===== WIRE THE CORE =====
	dataStore := mongostore.New(database.Client)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := dataStore.SeedActivities(seedCtx); err != nil {
		seedCancel()
		log.Fatal("❌ Failed to seed activity catalog:", err)
	}
	seedCancel()
	log.Println("✅ Activity catalog ready")

	gate := auth.NewService(dataStore)
	matcher := engine.New(dataStore)
	handlers.Init(dataStore, gate, matcher)

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// ===== ROUTER =====
	router := routes.SetupRouter(gate)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "Clique Backend Running 🚀",
			"service": "healthy",
		})
	})

	// ===== WEBSOCKET =====
	wsManager := websocket.NewManager()
	go wsManager.Start()
	handlers.SetWebSocketManager(wsManager)

	router.GET("/ws", func(c *gin.Context) {
		websocket.Handler(wsManager, gate)(c.Writer, c.Request)
	})
	log.Println("✅ WebSocket endpoint: /ws")

	// ===== SERVER CONFIG =====
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error:", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
