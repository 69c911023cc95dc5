package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/radu-bors/Clique-backend/auth"
	"github.com/radu-bors/Clique-backend/store"
)

type RegisterRequest struct {
	FirstName        string            `json:"firstName" binding:"required"`
	LastName         string            `json:"lastName" binding:"required"`
	MiddleName       string            `json:"middleName"`
	Username         string            `json:"username" binding:"required"`
	Email            string            `json:"email" binding:"required,email"`
	Password         string            `json:"password" binding:"required,min=6"`
	BirthDate        int64             `json:"birthDate" binding:"required"`
	Gender           string            `json:"gender" binding:"required,oneof=male female other"`
	Location         []float64         `json:"location" binding:"required,len=2"`
	ProfilePhotoURL  string            `json:"profilePhotoUrl"`
	Description      string            `json:"description" binding:"max=1000"`
	SocialMediaLinks map[string]string `json:"socialMediaLinks"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Email uniqueness check against the auth store.
	if _, err := dataStore.GetUserAuthByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(c, err)
		return
	}

	user, err := gate.Register(ctx, auth.RegisterInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		MiddleName:       req.MiddleName,
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		BirthDate:        req.BirthDate,
		Gender:           req.Gender,
		Location:         req.Location,
		ProfilePhotoURL:  req.ProfilePhotoURL,
		Description:      req.Description,
		SocialMediaLinks: req.SocialMediaLinks,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Log the fresh user straight in.
	session, err := gate.StartSession(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User created successfully",
		"userId":    user.ID.Hex(),
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := gate.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"userId":    session.UserID.Hex(),
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}
