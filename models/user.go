package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName        string             `bson:"firstName" json:"firstName"`
	LastName         string             `bson:"lastName" json:"lastName"`
	MiddleName       string             `bson:"middleName,omitempty" json:"middleName,omitempty"`
	Username         string             `bson:"username" json:"username"`
	Email            string             `bson:"email" json:"email"`
	BirthDate        int64              `bson:"birthDate" json:"birthDate"` // Unix timestamp
	Gender           string             `bson:"gender" json:"gender"`       // male, female, other
	Location         []float64          `bson:"location" json:"location"`   // [latitude, longitude]
	ProfilePhotoURL  string             `bson:"profilePhotoUrl" json:"profilePhotoUrl"`
	Description      string             `bson:"description" json:"description"`
	SocialMediaLinks map[string]string  `bson:"socialMediaLinks,omitempty" json:"socialMediaLinks,omitempty"`
	LastOnline       int64              `bson:"lastOnline" json:"lastOnline"`
	IsOnline         bool               `bson:"isOnline" json:"isOnline"`
	CreatedAt        int64              `bson:"createdAt" json:"createdAt"`
}

// Age in whole years at time now, derived from the stored birthdate.
func (u *User) Age(now time.Time) int {
	birth := time.Unix(u.BirthDate, 0)
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	return years
}

// ProfileUpdate carries the optional profile fields a user may change.
// Nil / empty fields are left untouched.
type ProfileUpdate struct {
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	MiddleName       string            `json:"middleName"`
	Username         string            `json:"username"`
	Description      string            `json:"description"`
	ProfilePhotoURL  string            `json:"profilePhotoUrl"`
	SocialMediaLinks map[string]string `json:"socialMediaLinks"`
	Location         []float64         `json:"location"`
}
