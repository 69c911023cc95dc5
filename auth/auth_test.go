package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radu-bors/Clique-backend/models"
	"github.com/radu-bors/Clique-backend/store/memstore"
)

func TestHashWithSaltDeterministic(t *testing.T) {
	hash, salt, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if HashWithSalt("hunter2", salt) != hash {
		t.Error("rehash with stored salt must reproduce the hash")
	}
	if HashWithSalt("hunter3", salt) == hash {
		t.Error("different password must not reproduce the hash")
	}
}

func TestAuthenticatePassword(t *testing.T) {
	s := memstore.New()
	svc := NewService(s)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		FirstName: "Ana",
		LastName:  "Pop",
		Username:  "anapop",
		Email:     "ana@example.com",
		Password:  "correct horse",
		Gender:    models.GenderFemale,
		Location:  []float64{52.52, 13.405},
	})
	if err != nil {
		t.Fatal(err)
	}

	ok, userID, err := svc.AuthenticatePassword(ctx, "ana@example.com", "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || userID != user.ID {
		t.Errorf("valid credentials rejected (ok=%v, id=%s)", ok, userID.Hex())
	}

	ok, _, err = svc.AuthenticatePassword(ctx, "ana@example.com", "wrong")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("wrong password accepted")
	}

	ok, _, err = svc.AuthenticatePassword(ctx, "nobody@example.com", "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown email accepted")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(memstore.New())

	_, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestIsSessionValid(t *testing.T) {
	s := memstore.New()
	svc := NewService(s)
	ctx := context.Background()

	alice, err := svc.Register(ctx, RegisterInput{
		FirstName: "Alice", LastName: "A", Username: "alice",
		Email: "alice@example.com", Password: "pw-alice", Gender: models.GenderFemale,
	})
	if err != nil {
		t.Fatal(err)
	}
	bob, err := svc.Register(ctx, RegisterInput{
		FirstName: "Bob", LastName: "B", Username: "bob",
		Email: "bob@example.com", Password: "pw-bob", Gender: models.GenderMale,
	})
	if err != nil {
		t.Fatal(err)
	}

	session, err := svc.StartSession(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}

	if !svc.IsSessionValid(ctx, alice.ID, session.Token) {
		t.Error("exact unexpired pair must be valid")
	}
	if svc.IsSessionValid(ctx, alice.ID, "bogus-token") {
		t.Error("wrong token must be invalid")
	}
	if svc.IsSessionValid(ctx, bob.ID, session.Token) {
		t.Error("token belonging to a different user must be invalid")
	}
}

func TestSessionExpiry(t *testing.T) {
	s := memstore.New()
	svc := NewService(s)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		FirstName: "Cara", LastName: "C", Username: "cara",
		Email: "cara@example.com", Password: "pw", Gender: models.GenderOther,
	})
	if err != nil {
		t.Fatal(err)
	}

	issued := time.Now()
	svc.Now = func() time.Time { return issued }
	session, err := svc.StartSession(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}

	svc.Now = func() time.Time { return issued.Add(SessionTTL - time.Hour) }
	if !svc.IsSessionValid(ctx, user.ID, session.Token) {
		t.Error("session must be valid before its expiry")
	}

	svc.Now = func() time.Time { return issued.Add(SessionTTL + time.Hour) }
	if svc.IsSessionValid(ctx, user.ID, session.Token) {
		t.Error("session must be invalid after its expiry")
	}
}
