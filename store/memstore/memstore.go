// Package memstore is an in-memory persistence gateway used by tests. It
// mirrors mongostore's semantics, including insertion-order query results
// and duplicate match rows.
package memstore

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
	"github.com/radu-bors/Clique-backend/store"
)

type MemStore struct {
	mu sync.Mutex

	users      map[primitive.ObjectID]*models.User
	userAuth   []*models.UserAuth
	sessions   []*models.Session
	activities []*models.Activity
	events     []*models.Event
	matches    []*models.Match
	chats      []*models.ChatMessage
	pushSubs   map[primitive.ObjectID]*models.PushSubscription
}

func New() *MemStore {
	return &MemStore{
		users:    make(map[primitive.ObjectID]*models.User),
		pushSubs: make(map[primitive.ObjectID]*models.PushSubscription),
	}
}

// SeedActivities registers catalog entries by name.
func (s *MemStore) SeedActivities(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.activities = append(s.activities, &models.Activity{
			ID:   primitive.NewObjectID(),
			Name: name,
		})
	}
}

// ----- Users -----

func (s *MemStore) CreateUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	s.users[user.ID] = &clone
	return user.ID, nil
}

func (s *MemStore) GetUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemStore) UpdateUserProfile(_ context.Context, id primitive.ObjectID, update models.ProfileUpdate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.MiddleName != "" {
		user.MiddleName = update.MiddleName
	}
	if update.Username != "" {
		user.Username = update.Username
	}
	if update.Description != "" {
		user.Description = update.Description
	}
	if update.ProfilePhotoURL != "" {
		user.ProfilePhotoURL = update.ProfilePhotoURL
	}
	if update.SocialMediaLinks != nil {
		user.SocialMediaLinks = update.SocialMediaLinks
	}
	if len(update.Location) == 2 {
		user.Location = update.Location
	}
	return 1, nil
}

func (s *MemStore) TouchUserOnline(_ context.Context, id primitive.ObjectID, online bool, at int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		user.IsOnline = online
		user.LastOnline = at
	}
	return nil
}

// ----- Credentials and sessions -----

func (s *MemStore) CreateUserAuth(_ context.Context, auth *models.UserAuth) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *auth
	s.userAuth = append(s.userAuth, &clone)
	return nil
}

func (s *MemStore) GetUserAuthByEmail(_ context.Context, email string) (*models.UserAuth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, auth := range s.userAuth {
		if auth.Email == email {
			clone := *auth
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemStore) UpdateLastLogin(_ context.Context, userID primitive.ObjectID, at int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, auth := range s.userAuth {
		if auth.UserID == userID {
			auth.LastLogin = at
			auth.UpdatedAt = at
		}
	}
	return nil
}

func (s *MemStore) CreateSession(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	clone := *session
	s.sessions = append(s.sessions, &clone)
	return nil
}

func (s *MemStore) GetSession(_ context.Context, userID primitive.ObjectID, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		if session.UserID == userID && session.Token == token {
			clone := *session
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

// ----- Activity catalog -----

func (s *MemStore) GetActivityByName(_ context.Context, name string) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, activity := range s.activities {
		if activity.Name == name {
			clone := *activity
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemStore) ListActivities(_ context.Context) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Activity, 0, len(s.activities))
	for _, activity := range s.activities {
		out = append(out, *activity)
	}
	return out, nil
}

// ----- Events -----

func (s *MemStore) CreateEvent(_ context.Context, event *models.Event) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	clone := *event
	s.events = append(s.events, &clone)
	return event.ID, nil
}

func (s *MemStore) GetEvent(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range s.events {
		if event.ID == id {
			clone := *event
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemStore) QueryOpenEvents(_ context.Context, activityIDs []primitive.ObjectID, minAge, maxAge int) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(activityIDs))
	for _, id := range activityIDs {
		wanted[id] = true
	}
	var out []models.Event
	for _, event := range s.events {
		if !event.IsOpen || !wanted[event.ActivityID] {
			continue
		}
		if event.MinAge > maxAge || event.MaxAge < minAge {
			continue
		}
		out = append(out, *event)
	}
	return out, nil
}

func (s *MemStore) CloseEvent(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range s.events {
		if event.ID == id {
			event.IsOpen = false
			return 1, nil
		}
	}
	return 0, nil
}

// ----- Matches and chat -----

func (s *MemStore) CreateMatch(_ context.Context, match *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if match.ID.IsZero() {
		match.ID = primitive.NewObjectID()
	}
	clone := *match
	s.matches = append(s.matches, &clone)
	return nil
}

func (s *MemStore) GetMatch(_ context.Context, eventID, creator, participant primitive.ObjectID) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.matches {
		if match.EventID == eventID && match.Creator == creator && match.Participant == participant {
			clone := *match
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemStore) SetMatchAccepted(_ context.Context, eventID, creator, participant primitive.ObjectID, accepted bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched int64
	for _, match := range s.matches {
		if match.EventID == eventID && match.Creator == creator && match.Participant == participant {
			value := accepted
			match.Accepted = &value
			matched++
		}
	}
	return matched, nil
}

func (s *MemStore) ListMatchesByParticipant(_ context.Context, participant primitive.ObjectID) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Match
	for _, match := range s.matches {
		if match.Participant == participant {
			out = append(out, *match)
		}
	}
	return out, nil
}

func (s *MemStore) GetMatchByChat(_ context.Context, chatID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.matches {
		if match.ChatID == chatID {
			clone := *match
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemStore) AppendChatBlock(_ context.Context, chatID, text string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.matches {
		if match.ChatID == chatID {
			parts := []string{}
			if match.ChatBlock != "" {
				parts = append(parts, match.ChatBlock)
			}
			parts = append(parts, text)
			match.ChatBlock = strings.Join(parts, " ")
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemStore) CreateChatMessage(_ context.Context, msg *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	clone := *msg
	s.chats = append(s.chats, &clone)
	return nil
}

func (s *MemStore) ListChatMessages(_ context.Context, chatID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChatMessage
	for _, msg := range s.chats {
		if msg.ChatID == chatID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

// ----- Push subscriptions -----

func (s *MemStore) UpsertPushSubscription(_ context.Context, sub *models.PushSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	clone := *sub
	s.pushSubs[sub.UserID] = &clone
	return nil
}

func (s *MemStore) GetPushSubscription(_ context.Context, userID primitive.ObjectID) (*models.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.pushSubs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *sub
	return &clone, nil
}
