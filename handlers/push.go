package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
	"github.com/radu-bors/Clique-backend/store"
)

func GetVapidPublicKey(c *gin.Context) {
	publicKey := os.Getenv("VAPID_PUBLIC_KEY")
	if publicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "VAPID public key not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": publicKey})
}

func SubscribePush(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sub := &models.PushSubscription{
		UserID: userID,
		Sub: webpush.Subscription{
			Endpoint: req.Endpoint,
			Keys: webpush.Keys{
				P256dh: req.Keys.P256dh,
				Auth:   req.Keys.Auth,
			},
		},
	}
	if err := dataStore.UpsertPushSubscription(ctx, sub); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push subscription saved"})
}

// sendPushNotification delivers a best-effort web push to the user's
// subscribed endpoint, if any. Failures are logged and swallowed.
func sendPushNotification(userID primitive.ObjectID, title, body string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[push] panic: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sub, err := dataStore.GetPushSubscription(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return
		}
		if err != nil {
			log.Printf("[push] failed to load subscription for %s: %v", userID.Hex(), err)
			return
		}

		payload, err := json.Marshal(map[string]interface{}{
			"title": title,
			"body":  body,
			"data": map[string]interface{}{
				"timestamp": time.Now().Unix(),
			},
		})
		if err != nil {
			log.Printf("[push] failed to marshal payload: %v", err)
			return
		}

		resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
			Subscriber:      "mailto:admin@clique.app",
			VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
			VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
			TTL:             30,
		})
		if err != nil {
			log.Printf("[push] failed to send to %s: %v", userID.Hex(), err)
			return
		}
		defer resp.Body.Close()
	}()
}
