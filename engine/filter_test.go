package engine

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/geo"
	"github.com/radu-bors/Clique-backend/models"
	"github.com/radu-bors/Clique-backend/store"
	"github.com/radu-bors/Clique-backend/store/memstore"
)

var (
	berlin  = []float64{52.5200, 13.4050}
	potsdam = []float64{52.3906, 13.0645}
	munich  = []float64{48.1351, 11.5820}
)

func newTestEngine(t *testing.T) (*Engine, *memstore.MemStore) {
	t.Helper()
	s := memstore.New()
	s.SeedActivities("hiking", "cycling")
	return New(s), s
}

func addUser(t *testing.T, s *memstore.MemStore, location []float64) primitive.ObjectID {
	t.Helper()
	id, err := s.CreateUser(context.Background(), &models.User{
		FirstName: "Test",
		LastName:  "User",
		Gender:    models.GenderOther,
		Location:  location,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func addEvent(t *testing.T, s *memstore.MemStore, activity string, creator primitive.ObjectID, location []float64, minAge, maxAge int, genders []string) primitive.ObjectID {
	t.Helper()
	ctx := context.Background()
	act, err := s.GetActivityByName(ctx, activity)
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.CreateEvent(ctx, &models.Event{
		ActivityID:       act.ID,
		InitiatedBy:      creator,
		Location:         location,
		MinAge:           minAge,
		MaxAge:           maxAge,
		PreferredGenders: genders,
		IsOpen:           true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestFilterEventsRadius(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	requester := addUser(t, s, berlin)
	creator := addUser(t, s, potsdam)

	near := addEvent(t, s, "hiking", creator, potsdam, 18, 99, []string{models.GenderMale, models.GenderFemale, models.GenderOther})
	addEvent(t, s, "hiking", creator, munich, 18, 99, []string{models.GenderMale, models.GenderFemale, models.GenderOther})

	nearDist, err := geo.Distance(berlin, potsdam)
	if err != nil {
		t.Fatal(err)
	}

	results, err := e.FilterEvents(ctx, requester, Criteria{
		Activities: []string{"hiking"},
		Genders:    []string{models.GenderFemale},
		MinAge:     18,
		MaxAge:     99,
		RadiusKm:   nearDist, // boundary is inclusive
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].EventID != near {
		t.Errorf("got event %s, want %s", results[0].EventID.Hex(), near.Hex())
	}
	if results[0].DistanceKm != nearDist {
		t.Errorf("got distance %d, want %d", results[0].DistanceKm, nearDist)
	}
	for _, r := range results {
		if r.DistanceKm > nearDist {
			t.Errorf("event %s outside radius: %d > %d", r.EventID.Hex(), r.DistanceKm, nearDist)
		}
	}
}

func TestFilterEventsAgeOverlap(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	requester := addUser(t, s, berlin)
	creator := addUser(t, s, berlin)
	addEvent(t, s, "hiking", creator, berlin, 18, 30, []string{models.GenderOther})

	overlapping := Criteria{
		Activities: []string{"hiking"},
		Genders:    []string{models.GenderOther},
		MinAge:     25,
		MaxAge:     40,
		RadiusKm:   10,
	}
	results, err := e.FilterEvents(ctx, requester, overlapping)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("overlapping ranges: got %d results, want 1", len(results))
	}

	disjoint := overlapping
	disjoint.MinAge = 31
	results, err = e.FilterEvents(ctx, requester, disjoint)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("disjoint ranges: got %d results, want 0", len(results))
	}
}

func TestFilterEventsGenderIntersection(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	requester := addUser(t, s, berlin)
	creator := addUser(t, s, berlin)
	addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderMale})

	results, err := e.FilterEvents(ctx, requester, Criteria{
		Activities: []string{"hiking"},
		Genders:    []string{models.GenderFemale},
		MinAge:     18,
		MaxAge:     99,
		RadiusKm:   100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("disjoint genders: got %d results, want 0", len(results))
	}
}

func TestFilterEventsUnknownActivity(t *testing.T) {
	e, s := newTestEngine(t)
	requester := addUser(t, s, berlin)

	_, err := e.FilterEvents(context.Background(), requester, Criteria{
		Activities: []string{"hiking", "basejumping"},
		Genders:    []string{models.GenderOther},
		MinAge:     18,
		MaxAge:     99,
		RadiusKm:   100,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown activity: err = %v, want ErrNotFound", err)
	}
}

func TestFilterEventsInvalidCriteria(t *testing.T) {
	e, s := newTestEngine(t)
	requester := addUser(t, s, berlin)
	ctx := context.Background()

	cases := []Criteria{
		{Activities: nil, Genders: []string{models.GenderOther}, MinAge: 18, MaxAge: 99, RadiusKm: 10},
		{Activities: []string{"hiking"}, Genders: nil, MinAge: 18, MaxAge: 99, RadiusKm: 10},
		{Activities: []string{"hiking"}, Genders: []string{models.GenderOther}, MinAge: 40, MaxAge: 20, RadiusKm: 10},
		{Activities: []string{"hiking"}, Genders: []string{models.GenderOther}, MinAge: 18, MaxAge: 99, RadiusKm: 0},
	}
	for i, c := range cases {
		if _, err := e.FilterEvents(ctx, requester, c); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestFilterEventsSkipsClosed(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()

	requester := addUser(t, s, berlin)
	creator := addUser(t, s, berlin)
	eventID := addEvent(t, s, "hiking", creator, berlin, 18, 99, []string{models.GenderOther})

	if _, err := s.CloseEvent(ctx, eventID); err != nil {
		t.Fatal(err)
	}

	results, err := e.FilterEvents(ctx, requester, Criteria{
		Activities: []string{"hiking"},
		Genders:    []string{models.GenderOther},
		MinAge:     18,
		MaxAge:     99,
		RadiusKm:   100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("closed event returned by filter: got %d results, want 0", len(results))
	}
}
