package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
)

func GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := dataStore.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if user.ProfilePhotoURL == "" {
		user.ProfilePhotoURL = fallbackPhoto
	}

	// Presence bookkeeping on every own-profile read.
	if err := dataStore.TouchUserOnline(ctx, userID, true, time.Now().Unix()); err != nil {
		log.Printf("[GetMyProfile] failed to touch presence: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               user.ID.Hex(),
		"firstName":        user.FirstName,
		"lastName":         user.LastName,
		"middleName":       user.MiddleName,
		"username":         user.Username,
		"email":            user.Email,
		"birthDate":        user.BirthDate,
		"age":              user.Age(time.Now()),
		"gender":           user.Gender,
		"location":         user.Location,
		"profilePhotoUrl":  user.ProfilePhotoURL,
		"description":      user.Description,
		"socialMediaLinks": user.SocialMediaLinks,
		"lastOnline":       user.LastOnline,
		"isOnline":         user.IsOnline,
		"createdAt":        user.CreatedAt,
	})
}

func GetUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := dataStore.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	photo := user.ProfilePhotoURL
	if photo == "" {
		photo = fallbackPhoto
	}

	// Public view: no email, no exact coordinates.
	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID.Hex(),
		"firstName":       user.FirstName,
		"username":        user.Username,
		"age":             user.Age(time.Now()),
		"gender":          user.Gender,
		"profilePhotoUrl": photo,
		"description":     user.Description,
		"lastOnline":      user.LastOnline,
		"isOnline":        user.IsOnline,
	})
}

func UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}
	if update.Location != nil && len(update.Location) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location must be [latitude, longitude]"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	matched, err := dataStore.UpdateUserProfile(ctx, userID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No changes to update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func UpdateMyLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Location []float64 `json:"location" binding:"required,len=2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location must be [latitude, longitude]"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	matched, err := dataStore.UpdateUserProfile(ctx, userID, models.ProfileUpdate{Location: req.Location})
	if err != nil {
		respondError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location updated successfully"})
}

func UploadPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}

	photoFile, _, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo file provided"})
		return
	}
	defer photoFile.Close()

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cloudinary configuration error"})
		return
	}

	uploadParams := uploader.UploadParams{
		Folder:         "clique/profile_photos",
		PublicID:       userID.Hex(),
		Transformation: "c_limit,w_800,h_800,q_auto",
	}

	uploadResult, err := cld.Upload.Upload(ctx, photoFile, uploadParams)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	if _, err := dataStore.UpdateUserProfile(ctx, userID, models.ProfileUpdate{ProfilePhotoURL: uploadResult.SecureURL}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": uploadResult.SecureURL})
}
