package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/engine"
)

func ListActivities(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activities, err := dataStore.ListActivities(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

func CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var draft engine.EventDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eventID, err := matcher.CreateEvent(ctx, userID, draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"eventId": eventID.Hex(),
	})
}

func FilterEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var criteria engine.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := matcher.FilterEvents(ctx, userID, criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[FilterEvents] user %s matched %d events", userID.Hex(), len(results))

	if len(results) == 0 {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}
	c.JSON(http.StatusOK, results)
}

func eventIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return primitive.NilObjectID, false
	}
	return eventID, true
}

func RequestToJoin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match, err := matcher.RequestToJoin(ctx, eventID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	sendPushNotification(match.Creator, "New join request", "Someone wants to join your event")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Join request created",
		"eventId": eventID.Hex(),
		"chatId":  match.ChatID,
	})
}

type participantRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

func AcceptParticipant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participantID, err := primitive.ObjectIDFromHex(req.ParticipantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid participant ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatID, err := matcher.AcceptParticipant(ctx, eventID, userID, participantID)
	if err != nil {
		respondError(c, err)
		return
	}

	sendPushNotification(participantID, "It's a match!", "Your join request was accepted")
	if wsManager != nil {
		wsManager.BroadcastMatchAccepted(map[string]interface{}{
			"eventId":       eventID.Hex(),
			"participantId": participantID.Hex(),
			"chatId":        chatID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Participant accepted",
		"chatId":  chatID,
	})
}

func RemoveParticipant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participantID, err := primitive.ObjectIDFromHex(req.ParticipantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid participant ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := matcher.RemoveParticipant(ctx, eventID, userID, participantID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant removed"})
}

func CloseEvent(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := matcher.CloseEvent(ctx, eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event closed"})
}

func DidIMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := matcher.DidIMatch(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(events) == 0 {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}
	c.JSON(http.StatusOK, events)
}
