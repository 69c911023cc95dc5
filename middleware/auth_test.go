package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/radu-bors/Clique-backend/auth"
	"github.com/radu-bors/Clique-backend/models"
	"github.com/radu-bors/Clique-backend/store/memstore"
)

func TestSessionAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := memstore.New()
	gate := auth.NewService(s)

	user, err := gate.Register(context.Background(), auth.RegisterInput{
		FirstName: "Test", LastName: "User", Username: "tester",
		Email: "tester@example.com", Password: "password123",
		Gender: models.GenderOther,
	})
	if err != nil {
		t.Fatal(err)
	}
	session, err := gate.StartSession(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	router.GET("/protected", SessionAuth(gate), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
	})

	tests := []struct {
		name           string
		userID         string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "valid session",
			userID:         user.ID.Hex(),
			authHeader:     "Bearer " + session.Token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong token",
			userID:         user.ID.Hex(),
			authHeader:     "Bearer wrong-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			userID:         user.ID.Hex(),
			authHeader:     session.Token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing credentials",
			userID:         "",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage user id",
			userID:         "not-an-object-id",
			authHeader:     "Bearer " + session.Token,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestSessionAuthQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := memstore.New()
	gate := auth.NewService(s)

	user, err := gate.Register(context.Background(), auth.RegisterInput{
		FirstName: "WS", LastName: "Client", Username: "wsclient",
		Email: "ws@example.com", Password: "password123",
		Gender: models.GenderOther,
	})
	if err != nil {
		t.Fatal(err)
	}
	session, err := gate.StartSession(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	router.GET("/protected", SessionAuth(gate), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected?userId="+user.ID.Hex()+"&token="+session.Token, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("query param credentials: got %d, want 200", rr.Code)
	}
}
