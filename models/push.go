package models

import (
	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PushSubscription stores one browser push endpoint per user.
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID   `bson:"userId" json:"userId"`
	Sub    webpush.Subscription `bson:"subscription" json:"subscription"`
}
