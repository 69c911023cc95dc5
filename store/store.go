// Package store defines the persistence gateway consumed by the auth gate
// and the matching engine. Implementations live in mongostore (production)
// and memstore (tests).
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (int64, error)
	TouchUserOnline(ctx context.Context, id primitive.ObjectID, online bool, at int64) error

	// Credentials and sessions
	CreateUserAuth(ctx context.Context, auth *models.UserAuth) error
	GetUserAuthByEmail(ctx context.Context, email string) (*models.UserAuth, error)
	UpdateLastLogin(ctx context.Context, userID primitive.ObjectID, at int64) error
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, userID primitive.ObjectID, token string) (*models.Session, error)

	// Activity catalog
	GetActivityByName(ctx context.Context, name string) (*models.Activity, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)

	// Events
	CreateEvent(ctx context.Context, event *models.Event) (primitive.ObjectID, error)
	GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	// QueryOpenEvents returns open events whose activity is in activityIDs
	// and whose declared age range overlaps [minAge, maxAge].
	QueryOpenEvents(ctx context.Context, activityIDs []primitive.ObjectID, minAge, maxAge int) ([]models.Event, error)
	CloseEvent(ctx context.Context, id primitive.ObjectID) (int64, error)

	// Matches and chat
	CreateMatch(ctx context.Context, match *models.Match) error
	GetMatch(ctx context.Context, eventID, creator, participant primitive.ObjectID) (*models.Match, error)
	SetMatchAccepted(ctx context.Context, eventID, creator, participant primitive.ObjectID, accepted bool) (int64, error)
	ListMatchesByParticipant(ctx context.Context, participant primitive.ObjectID) ([]models.Match, error)
	GetMatchByChat(ctx context.Context, chatID string) (*models.Match, error)
	AppendChatBlock(ctx context.Context, chatID, text string) (int64, error)
	CreateChatMessage(ctx context.Context, msg *models.ChatMessage) error
	ListChatMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error)

	// Push subscriptions
	UpsertPushSubscription(ctx context.Context, sub *models.PushSubscription) error
	GetPushSubscription(ctx context.Context, userID primitive.ObjectID) (*models.PushSubscription, error)
}
