package auth

import (
	"context"

	"github.com/radu-bors/Clique-backend/models"
)

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	FirstName        string
	LastName         string
	MiddleName       string
	Username         string
	Email            string
	Password         string
	BirthDate        int64
	Gender           string
	Location         []float64
	ProfilePhotoURL  string
	Description      string
	SocialMediaLinks map[string]string
}

// Register creates the profile document first and the credentials row
// second. There is no rollback if the second insert fails.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	now := s.Now().Unix()

	user := &models.User{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		MiddleName:       in.MiddleName,
		Username:         in.Username,
		Email:            in.Email,
		BirthDate:        in.BirthDate,
		Gender:           in.Gender,
		Location:         in.Location,
		ProfilePhotoURL:  in.ProfilePhotoURL,
		Description:      in.Description,
		SocialMediaLinks: in.SocialMediaLinks,
		CreatedAt:        now,
	}

	userID, err := s.Store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	hash, salt, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	record := &models.UserAuth{
		UserID:         userID,
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
		Salt:           salt,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastLogin:      now,
	}
	if err := s.Store.CreateUserAuth(ctx, record); err != nil {
		return nil, err
	}

	return user, nil
}
