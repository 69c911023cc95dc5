package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Activity is one entry of the fixed activity catalog seeded at startup.
type Activity struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Event is an activity meetup proposal, open for join requests until one
// participant is accepted.
type Event struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActivityID       primitive.ObjectID `bson:"activityId" json:"activityId"`
	InitiatedBy      primitive.ObjectID `bson:"initiatedBy" json:"initiatedBy"`
	Location         []float64          `bson:"location" json:"location"` // [latitude, longitude]
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	MinAge           int                `bson:"minAge" json:"minAge"`
	MaxAge           int                `bson:"maxAge" json:"maxAge"`
	PreferredGenders []string           `bson:"preferredGenders" json:"preferredGenders"`
	Description      string             `bson:"description" json:"description"`
	IsOpen           bool               `bson:"isOpen" json:"isOpen"`
	InitiatedOn      int64              `bson:"initiatedOn" json:"initiatedOn"`
	ScheduledFor     int64              `bson:"scheduledFor,omitempty" json:"scheduledFor,omitempty"`
}
