package engine

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/models"
)

func TestRequestToJoinMissingEvent(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.RequestToJoin(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRequestToJoinNoIdempotency(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	creator := addUser(t, s, berlin)
	participant := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	first, err := e.RequestToJoin(ctx, eventID, participant)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.RequestToJoin(ctx, eventID, participant)
	if err != nil {
		t.Fatal(err)
	}

	if first.ChatID == second.ChatID {
		t.Error("duplicate join requests must get distinct chat ids")
	}
	if first.Accepted != nil || second.Accepted != nil {
		t.Error("fresh requests must be pending")
	}

	rows, err := s.ListMatchesByParticipant(ctx, participant)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d match rows, want 2 independent rows", len(rows))
	}
}

func TestAcceptParticipant(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	creator := addUser(t, s, berlin)
	participant := addUser(t, s, berlin)
	stranger := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	match, err := e.RequestToJoin(ctx, eventID, participant)
	if err != nil {
		t.Fatal(err)
	}

	// Only the initiator may accept; the mismatch is unauthorized, not
	// not-found.
	if _, err := e.AcceptParticipant(ctx, eventID, stranger, participant); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-creator accept: err = %v, want ErrUnauthorized", err)
	}

	chatID, err := e.AcceptParticipant(ctx, eventID, creator, participant)
	if err != nil {
		t.Fatal(err)
	}
	if chatID != match.ChatID {
		t.Errorf("got chat id %s, want %s", chatID, match.ChatID)
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		t.Fatal(err)
	}
	if event.IsOpen {
		t.Error("event must be closed after accept")
	}

	row, err := s.GetMatch(ctx, eventID, creator, participant)
	if err != nil {
		t.Fatal(err)
	}
	if row.Accepted == nil || !*row.Accepted {
		t.Error("match row must be accepted")
	}
}

func TestAcceptOnClosedEvent(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	creator := addUser(t, s, berlin)
	first := addUser(t, s, berlin)
	second := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	if _, err := e.RequestToJoin(ctx, eventID, first); err != nil {
		t.Fatal(err)
	}
	if _, err := e.RequestToJoin(ctx, eventID, second); err != nil {
		t.Fatal(err)
	}

	if _, err := e.AcceptParticipant(ctx, eventID, creator, first); err != nil {
		t.Fatal(err)
	}

	// The close triggered by the first accept guards the second one.
	if _, err := e.AcceptParticipant(ctx, eventID, creator, second); !errors.Is(err, ErrNotFound) {
		t.Errorf("accept on closed event: err = %v, want ErrNotFound", err)
	}
}

func TestRemoveParticipant(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	creator := addUser(t, s, berlin)
	participant := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	if err := e.RemoveParticipant(ctx, eventID, creator, participant); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove without request: err = %v, want ErrNotFound", err)
	}

	if _, err := e.RequestToJoin(ctx, eventID, participant); err != nil {
		t.Fatal(err)
	}
	if err := e.RemoveParticipant(ctx, eventID, creator, participant); err != nil {
		t.Fatal(err)
	}

	row, err := s.GetMatch(ctx, eventID, creator, participant)
	if err != nil {
		t.Fatal(err)
	}
	if row.Accepted == nil || *row.Accepted {
		t.Error("match row must be rejected after remove")
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		t.Fatal(err)
	}
	if !event.IsOpen {
		t.Error("remove must not close the event")
	}
}

func TestDidIMatchNarrowsAfterAccept(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	creator := addUser(t, s, berlin)
	participant := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	if _, err := e.RequestToJoin(ctx, eventID, participant); err != nil {
		t.Fatal(err)
	}

	events, err := e.DidIMatch(ctx, participant)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ID != eventID {
		t.Fatalf("pending request: got %d events, want the open event", len(events))
	}

	if _, err := e.AcceptParticipant(ctx, eventID, creator, participant); err != nil {
		t.Fatal(err)
	}

	// The accept closed the event, so it no longer shows up even though the
	// request row itself stays accepted.
	events, err = e.DidIMatch(ctx, participant)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("after accept: got %d events, want 0", len(events))
	}
}

func TestCloseEvent(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	if err := e.CloseEvent(ctx, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("close missing event: err = %v, want ErrNotFound", err)
	}

	creator := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	if err := e.CloseEvent(ctx, eventID); err != nil {
		t.Fatal(err)
	}
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		t.Fatal(err)
	}
	if event.IsOpen {
		t.Error("event must be closed")
	}
}

func TestChatMembership(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	creator := addUser(t, s, berlin)
	participant := addUser(t, s, berlin)
	outsider := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	match, err := e.RequestToJoin(ctx, eventID, participant)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.WriteChat(ctx, match.ChatID, outsider, "hi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("outsider write: err = %v, want ErrNotFound", err)
	}
	if _, err := e.ReadChat(ctx, match.ChatID, outsider); !errors.Is(err, ErrNotFound) {
		t.Errorf("outsider read: err = %v, want ErrNotFound", err)
	}

	sent, err := e.WriteChat(ctx, match.ChatID, participant, "hello there")
	if err != nil {
		t.Fatal(err)
	}
	if sent.Recipient != creator {
		t.Errorf("recipient = %s, want creator %s", sent.Recipient.Hex(), creator.Hex())
	}

	if _, err := e.WriteChat(ctx, match.ChatID, creator, "hi back"); err != nil {
		t.Fatal(err)
	}

	messages, err := e.ReadChat(ctx, match.ChatID, creator)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}

	row, err := s.GetMatchByChat(ctx, match.ChatID)
	if err != nil {
		t.Fatal(err)
	}
	if row.ChatBlock != "hello there hi back" {
		t.Errorf("chat block = %q, want appended transcript", row.ChatBlock)
	}
}

func TestChatUnknownChatID(t *testing.T) {
	e, s := newTestEngine(t)
	user := addUser(t, s, berlin)

	if _, err := e.ReadChat(context.Background(), "no-such-chat", user); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
