package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func GetChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	chatID := c.Param("chatId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messages, err := matcher.ReadChat(ctx, chatID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(messages) == 0 {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func PostChatMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	chatID := c.Param("chatId")

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg, err := matcher.WriteChat(ctx, chatID, userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	sendPushNotification(msg.Recipient, "New message", req.Text)
	if wsManager != nil {
		wsManager.BroadcastChatMessage(map[string]interface{}{
			"chatId":    msg.ChatID,
			"senderId":  msg.Sender.Hex(),
			"text":      msg.Text,
			"sentAt":    msg.SentAt,
			"messageId": msg.ID.Hex(),
		})
	}

	c.JSON(http.StatusCreated, msg)
}
