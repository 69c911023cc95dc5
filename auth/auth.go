// Package auth implements password hashing, login, and the session gate
// every protected operation passes through.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
	"github.com/radu-bors/Clique-backend/store"
)

// SessionTTL is how long a freshly issued session token stays valid.
const SessionTTL = 30 * 24 * time.Hour

// ErrInvalidCredentials is returned on any email/password mismatch. Callers
// must not distinguish unknown email from wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashWithSalt returns the hex SHA-256 digest of password+salt.
func HashWithSalt(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// HashPassword hashes a password with a fresh 16-byte random salt and
// returns both.
func HashPassword(password string) (hash, salt string, err error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(raw)
	return HashWithSalt(password, salt), salt, nil
}

// Service owns credential checks and session lifecycle. Now is overridable
// so expiry behavior can be tested.
type Service struct {
	Store store.Store
	Now   func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{Store: s, Now: time.Now}
}

// AuthenticatePassword checks email/password against the stored salted
// hash. It reports false for unknown emails rather than failing.
func (s *Service) AuthenticatePassword(ctx context.Context, email, password string) (bool, primitive.ObjectID, error) {
	record, err := s.Store.GetUserAuthByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, primitive.NilObjectID, nil
	}
	if err != nil {
		return false, primitive.NilObjectID, err
	}
	if HashWithSalt(password, record.Salt) != record.HashedPassword {
		return false, primitive.NilObjectID, nil
	}
	return true, record.UserID, nil
}

// StartSession issues a new opaque token and persists it with a 30-day
// expiry. The token is the digest of the user id and the issue timestamp.
func (s *Service) StartSession(ctx context.Context, userID primitive.ObjectID) (*models.Session, error) {
	now := s.Now()
	sum := sha256.Sum256([]byte(userID.Hex() + strconv.FormatInt(now.UnixNano(), 10)))
	session := &models.Session{
		UserID:    userID,
		Token:     hex.EncodeToString(sum[:]),
		ExpiresAt: now.Add(SessionTTL).Unix(),
		CreatedAt: now.Unix(),
	}
	if err := s.Store.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Login authenticates and opens a session, touching last-login bookkeeping
// on success.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	ok, userID, err := s.AuthenticatePassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	session, err := s.StartSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now().Unix()
	if err := s.Store.UpdateLastLogin(ctx, userID, now); err != nil {
		return nil, err
	}
	if err := s.Store.TouchUserOnline(ctx, userID, true, now); err != nil {
		return nil, err
	}
	return session, nil
}

// IsSessionValid reports whether the exact (userID, token) pair exists with
// an expiry strictly in the future. Any miss is false, never an error to
// the caller.
func (s *Service) IsSessionValid(ctx context.Context, userID primitive.ObjectID, token string) bool {
	session, err := s.Store.GetSession(ctx, userID, token)
	if err != nil {
		return false
	}
	return s.Now().Unix() < session.ExpiresAt
}
