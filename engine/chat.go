package engine

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
)

// chatMember returns the match owning chatID if userID is its creator or
// participant. Anyone else gets ErrNotFound, indistinguishable from an
// unknown chat id.
func (e *Engine) chatMember(ctx context.Context, chatID string, userID primitive.ObjectID) (*models.Match, error) {
	match, err := e.Store.GetMatchByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if match.Creator != userID && match.Participant != userID {
		return nil, ErrNotFound
	}
	return match, nil
}

// ReadChat returns the transcript of a chat the user belongs to.
func (e *Engine) ReadChat(ctx context.Context, chatID string, userID primitive.ObjectID) ([]models.ChatMessage, error) {
	if _, err := e.chatMember(ctx, chatID, userID); err != nil {
		return nil, err
	}
	return e.Store.ListChatMessages(ctx, chatID)
}

// WriteChat appends a message to a chat the user belongs to, both as an
// individual message document and onto the match's transcript blob.
func (e *Engine) WriteChat(ctx context.Context, chatID string, userID primitive.ObjectID, text string) (*models.ChatMessage, error) {
	match, err := e.chatMember(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	recipient := match.Creator
	if userID == match.Creator {
		recipient = match.Participant
	}

	msg := &models.ChatMessage{
		ChatID:    chatID,
		Text:      text,
		Sender:    userID,
		Recipient: recipient,
		SentAt:    time.Now().Unix(),
	}
	if err := e.Store.CreateChatMessage(ctx, msg); err != nil {
		return nil, err
	}
	if _, err := e.Store.AppendChatBlock(ctx, chatID, text); err != nil {
		return nil, err
	}
	return msg, nil
}
