package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserAuth is the credentials row kept in the auth database, separate from
// the profile document.
type UserAuth struct {
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashedPassword" json:"-"`
	Salt           string             `bson:"salt" json:"-"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt      int64              `bson:"updatedAt" json:"updatedAt"`
	LastLogin      int64              `bson:"lastLogin" json:"lastLogin"`
}

// Session is valid iff the exact (userId, token) pair exists and the current
// time is strictly before ExpiresAt. Sessions are never revoked explicitly.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Token     string             `bson:"token" json:"token"`
	ExpiresAt int64              `bson:"expiresAt" json:"expiresAt"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}
