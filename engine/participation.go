package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
)

// EventDraft is the payload for creating a new event.
type EventDraft struct {
	Activity         string    `json:"activity" binding:"required"`
	Location         []float64 `json:"location" binding:"required"`
	Address          string    `json:"address"`
	MinAge           int       `json:"minAge" binding:"required"`
	MaxAge           int       `json:"maxAge" binding:"required"`
	PreferredGenders []string  `json:"preferredGenders" binding:"required,min=1"`
	Description      string    `json:"description"`
	ScheduledFor     int64     `json:"scheduledFor"`
}

// CreateEvent validates the draft, resolves the activity name, and persists
// an open event. Nothing is persisted if any step fails.
func (e *Engine) CreateEvent(ctx context.Context, creatorID primitive.ObjectID, draft EventDraft) (primitive.ObjectID, error) {
	if len(draft.Location) != 2 {
		return primitive.NilObjectID, fmt.Errorf("%w: location must be [latitude, longitude]", ErrInvalidInput)
	}
	if draft.MinAge > draft.MaxAge {
		return primitive.NilObjectID, fmt.Errorf("%w: min age %d above max age %d", ErrInvalidInput, draft.MinAge, draft.MaxAge)
	}
	if len(draft.PreferredGenders) == 0 {
		return primitive.NilObjectID, fmt.Errorf("%w: empty preferred gender set", ErrInvalidInput)
	}

	activity, err := e.Store.GetActivityByName(ctx, draft.Activity)
	if err != nil {
		return primitive.NilObjectID, err
	}

	event := &models.Event{
		ActivityID:       activity.ID,
		InitiatedBy:      creatorID,
		Location:         draft.Location,
		Address:          draft.Address,
		MinAge:           draft.MinAge,
		MaxAge:           draft.MaxAge,
		PreferredGenders: draft.PreferredGenders,
		Description:      draft.Description,
		IsOpen:           true,
		InitiatedOn:      time.Now().Unix(),
		ScheduledFor:     draft.ScheduledFor,
	}
	return e.Store.CreateEvent(ctx, event)
}

// RequestToJoin creates a pending match row with a fresh chat id. Calling
// this twice for the same pair creates two independent rows; that quirk is
// kept on purpose.
func (e *Engine) RequestToJoin(ctx context.Context, eventID, participantID primitive.ObjectID) (*models.Match, error) {
	event, err := e.Store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		EventID:     event.ID,
		Creator:     event.InitiatedBy,
		Participant: participantID,
		Accepted:    nil,
		ChatID:      uuid.NewString(),
		RequestedOn: time.Now().Unix(),
	}
	if err := e.Store.CreateMatch(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// AcceptParticipant marks the pair accepted and closes the event, returning
// the chat id. Only the initiator may accept; a mismatch reports
// ErrUnauthorized so callers cannot probe which events exist. A closed
// event reports ErrNotFound. The accept and the close are two separate
// writes with no rollback between them.
func (e *Engine) AcceptParticipant(ctx context.Context, eventID, creatorID, participantID primitive.ObjectID) (string, error) {
	event, err := e.Store.GetEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	if event.InitiatedBy != creatorID {
		return "", ErrUnauthorized
	}
	if !event.IsOpen {
		return "", ErrNotFound
	}

	match, err := e.Store.GetMatch(ctx, eventID, creatorID, participantID)
	if err != nil {
		return "", err
	}

	if _, err := e.Store.SetMatchAccepted(ctx, eventID, creatorID, participantID, true); err != nil {
		return "", err
	}
	if _, err := e.Store.CloseEvent(ctx, eventID); err != nil {
		return "", err
	}
	return match.ChatID, nil
}

// RemoveParticipant flips the pair to rejected. The event stays closed if
// it already is; removal never reopens it.
func (e *Engine) RemoveParticipant(ctx context.Context, eventID, creatorID, participantID primitive.ObjectID) error {
	affected, err := e.Store.SetMatchAccepted(ctx, eventID, creatorID, participantID, false)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DidIMatch lists the still-open events on which the user has a join
// request. Once an accept closes an event it stops showing up here, even
// though the request row stays accepted.
func (e *Engine) DidIMatch(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	matches, err := e.Store.ListMatchesByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	for _, match := range matches {
		event, err := e.Store.GetEvent(ctx, match.EventID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if event.IsOpen {
			events = append(events, *event)
		}
	}
	return events, nil
}

// CloseEvent unconditionally closes the event; zero affected rows means the
// id does not exist.
func (e *Engine) CloseEvent(ctx context.Context, eventID primitive.ObjectID) error {
	affected, err := e.Store.CloseEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
