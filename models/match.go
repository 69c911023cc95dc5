package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Match is one join attempt by one user against one event. Accepted is nil
// while the request is pending, true once accepted, false once rejected or
// removed. The chat id is assigned at request time and never changes.
type Match struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"eventId" json:"eventId"`
	Creator     primitive.ObjectID `bson:"creator" json:"creator"`
	Participant primitive.ObjectID `bson:"participant" json:"participant"`
	Accepted    *bool              `bson:"accepted" json:"accepted"`
	ChatID      string             `bson:"chatId" json:"chatId"`
	ChatBlock   string             `bson:"chatBlock" json:"chatBlock"`
	RequestedOn int64              `bson:"requestedOn" json:"requestedOn"`
}

// ChatMessage is a single line of the private chat tied to a match.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    string             `bson:"chatId" json:"chatId"`
	Text      string             `bson:"text" json:"text"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	SentAt    int64              `bson:"sentAt" json:"sentAt"`
}
