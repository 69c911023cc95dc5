// Package mongostore implements the persistence gateway on MongoDB, split
// across the app database (profiles, events, matches, chats) and the auth
// database (credentials, sessions).
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/radu-bors/Clique-backend/models"
	"github.com/radu-bors/Clique-backend/store"
)

const (
	appDB  = "clique_app"
	authDB = "clique_auth"
)

// MongoStore resolves every collection handle once at construction; all
// operations reference this fixed registry rather than redefining schema
// per call.
type MongoStore struct {
	users      *mongo.Collection
	userAuth   *mongo.Collection
	sessions   *mongo.Collection
	activities *mongo.Collection
	events     *mongo.Collection
	matches    *mongo.Collection
	chats      *mongo.Collection
	pushSubs   *mongo.Collection
}

func New(client *mongo.Client) *MongoStore {
	app := client.Database(appDB)
	auth := client.Database(authDB)
	return &MongoStore{
		users:      app.Collection("users"),
		activities: app.Collection("activities"),
		events:     app.Collection("events"),
		matches:    app.Collection("matches"),
		chats:      app.Collection("chats"),
		pushSubs:   app.Collection("push_subscriptions"),
		userAuth:   auth.Collection("users_auth"),
		sessions:   auth.Collection("sessions"),
	}
}

// DefaultActivities is the fixed catalog seeded on first start.
var DefaultActivities = []string{"hiking", "cycling", "running", "climbing", "swimming", "yoga"}

// SeedActivities inserts any catalog entry that does not exist yet.
func (s *MongoStore) SeedActivities(ctx context.Context) error {
	for _, name := range DefaultActivities {
		_, err := s.activities.UpdateOne(
			ctx,
			bson.M{"name": name},
			bson.M{"$setOnInsert": bson.M{"name": name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ----- Users -----

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}

func (s *MongoStore) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (int64, error) {
	set := bson.M{}
	if update.FirstName != "" {
		set["firstName"] = update.FirstName
	}
	if update.LastName != "" {
		set["lastName"] = update.LastName
	}
	if update.MiddleName != "" {
		set["middleName"] = update.MiddleName
	}
	if update.Username != "" {
		set["username"] = update.Username
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if update.ProfilePhotoURL != "" {
		set["profilePhotoUrl"] = update.ProfilePhotoURL
	}
	if update.SocialMediaLinks != nil {
		set["socialMediaLinks"] = update.SocialMediaLinks
	}
	if len(update.Location) == 2 {
		set["location"] = update.Location
	}
	if len(set) == 0 {
		return 0, nil
	}

	result, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *MongoStore) TouchUserOnline(ctx context.Context, id primitive.ObjectID, online bool, at int64) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"isOnline":   online,
		"lastOnline": at,
	}})
	return err
}

// ----- Credentials and sessions -----

func (s *MongoStore) CreateUserAuth(ctx context.Context, auth *models.UserAuth) error {
	_, err := s.userAuth.InsertOne(ctx, auth)
	return err
}

func (s *MongoStore) GetUserAuthByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	var auth models.UserAuth
	err := s.userAuth.FindOne(ctx, bson.M{"email": email}).Decode(&auth)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (s *MongoStore) UpdateLastLogin(ctx context.Context, userID primitive.ObjectID, at int64) error {
	_, err := s.userAuth.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": bson.M{
		"lastLogin": at,
		"updatedAt": at,
	}})
	return err
}

func (s *MongoStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	_, err := s.sessions.InsertOne(ctx, session)
	return err
}

func (s *MongoStore) GetSession(ctx context.Context, userID primitive.ObjectID, token string) (*models.Session, error) {
	var session models.Session
	err := s.sessions.FindOne(ctx, bson.M{"userId": userID, "token": token}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ----- Activity catalog -----

func (s *MongoStore) GetActivityByName(ctx context.Context, name string) (*models.Activity, error) {
	var activity models.Activity
	err := s.activities.FindOne(ctx, bson.M{"name": name}).Decode(&activity)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *MongoStore) ListActivities(ctx context.Context) ([]models.Activity, error) {
	cursor, err := s.activities.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// ----- Events -----

func (s *MongoStore) CreateEvent(ctx context.Context, event *models.Event) (primitive.ObjectID, error) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, err := s.events.InsertOne(ctx, event); err != nil {
		return primitive.NilObjectID, err
	}
	return event.ID, nil
}

func (s *MongoStore) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := s.events.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *MongoStore) QueryOpenEvents(ctx context.Context, activityIDs []primitive.ObjectID, minAge, maxAge int) ([]models.Event, error) {
	// Range overlap: event.minAge <= maxAge AND event.maxAge >= minAge.
	cursor, err := s.events.Find(ctx, bson.M{
		"activityId": bson.M{"$in": activityIDs},
		"isOpen":     true,
		"minAge":     bson.M{"$lte": maxAge},
		"maxAge":     bson.M{"$gte": minAge},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *MongoStore) CloseEvent(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.events.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isOpen": false}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// ----- Matches and chat -----

func (s *MongoStore) CreateMatch(ctx context.Context, match *models.Match) error {
	if match.ID.IsZero() {
		match.ID = primitive.NewObjectID()
	}
	_, err := s.matches.InsertOne(ctx, match)
	return err
}

func (s *MongoStore) GetMatch(ctx context.Context, eventID, creator, participant primitive.ObjectID) (*models.Match, error) {
	var match models.Match
	err := s.matches.FindOne(ctx, bson.M{
		"eventId":     eventID,
		"creator":     creator,
		"participant": participant,
	}).Decode(&match)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MongoStore) SetMatchAccepted(ctx context.Context, eventID, creator, participant primitive.ObjectID, accepted bool) (int64, error) {
	result, err := s.matches.UpdateMany(ctx, bson.M{
		"eventId":     eventID,
		"creator":     creator,
		"participant": participant,
	}, bson.M{"$set": bson.M{"accepted": accepted}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *MongoStore) ListMatchesByParticipant(ctx context.Context, participant primitive.ObjectID) ([]models.Match, error) {
	cursor, err := s.matches.Find(ctx, bson.M{"participant": participant})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *MongoStore) GetMatchByChat(ctx context.Context, chatID string) (*models.Match, error) {
	var match models.Match
	err := s.matches.FindOne(ctx, bson.M{"chatId": chatID}).Decode(&match)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MongoStore) AppendChatBlock(ctx context.Context, chatID, text string) (int64, error) {
	var match models.Match
	err := s.matches.FindOne(ctx, bson.M{"chatId": chatID}).Decode(&match)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	block := match.ChatBlock
	if block != "" {
		block += " "
	}
	block += text

	result, err := s.matches.UpdateOne(ctx, bson.M{"chatId": chatID}, bson.M{"$set": bson.M{"chatBlock": block}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *MongoStore) CreateChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	_, err := s.chats.InsertOne(ctx, msg)
	return err
}

func (s *MongoStore) ListChatMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: 1}})
	cursor, err := s.chats.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// ----- Push subscriptions -----

func (s *MongoStore) UpsertPushSubscription(ctx context.Context, sub *models.PushSubscription) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	_, err := s.pushSubs.UpdateOne(
		ctx,
		bson.M{"userId": sub.UserID},
		bson.M{"$set": bson.M{"userId": sub.UserID, "subscription": sub.Sub}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) GetPushSubscription(ctx context.Context, userID primitive.ObjectID) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	err := s.pushSubs.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
