package engine

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/geo"
)

// Criteria is the filter a user runs over candidate events.
type Criteria struct {
	Activities []string `json:"activities" binding:"required,min=1"`
	Genders    []string `json:"genders" binding:"required,min=1"`
	MinAge     int      `json:"minAge" binding:"required"`
	MaxAge     int      `json:"maxAge" binding:"required"`
	RadiusKm   int      `json:"radiusKm" binding:"required"`
}

func (c Criteria) validate() error {
	if len(c.Activities) == 0 {
		return fmt.Errorf("%w: empty activity set", ErrInvalidInput)
	}
	if len(c.Genders) == 0 {
		return fmt.Errorf("%w: empty gender set", ErrInvalidInput)
	}
	if c.MinAge > c.MaxAge {
		return fmt.Errorf("%w: min age %d above max age %d", ErrInvalidInput, c.MinAge, c.MaxAge)
	}
	if c.RadiusKm <= 0 {
		return fmt.Errorf("%w: radius must be positive", ErrInvalidInput)
	}
	return nil
}

// EventSummary is one filter hit: the event id, where it is, which activity
// it proposes, and how far away it is from the requester.
type EventSummary struct {
	EventID    primitive.ObjectID `json:"eventId"`
	Location   []float64          `json:"location"`
	ActivityID primitive.ObjectID `json:"activityId"`
	DistanceKm int                `json:"distanceKm"`
}

// FilterEvents returns the open events matching the criteria, in the order
// the store returned them. Unknown activity names fail the whole call; the
// engine never silently skips them.
func (e *Engine) FilterEvents(ctx context.Context, requesterID primitive.ObjectID, criteria Criteria) ([]EventSummary, error) {
	if err := criteria.validate(); err != nil {
		return nil, err
	}

	activityIDs := make([]primitive.ObjectID, 0, len(criteria.Activities))
	for _, name := range criteria.Activities {
		activity, err := e.Store.GetActivityByName(ctx, name)
		if err != nil {
			return nil, err
		}
		activityIDs = append(activityIDs, activity.ID)
	}

	requester, err := e.Store.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(requester.Location) != 2 {
		return nil, fmt.Errorf("%w: requester has no location", ErrInvalidInput)
	}

	candidates, err := e.Store.QueryOpenEvents(ctx, activityIDs, criteria.MinAge, criteria.MaxAge)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(criteria.Genders))
	for _, g := range criteria.Genders {
		wanted[g] = true
	}

	var results []EventSummary
	for _, event := range candidates {
		if !gendersIntersect(event.PreferredGenders, wanted) {
			continue
		}
		distance, err := geo.Distance(requester.Location, event.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if distance > criteria.RadiusKm {
			continue
		}
		results = append(results, EventSummary{
			EventID:    event.ID,
			Location:   event.Location,
			ActivityID: event.ActivityID,
			DistanceKm: distance,
		})
	}
	return results, nil
}

func gendersIntersect(eventGenders []string, wanted map[string]bool) bool {
	for _, g := range eventGenders {
		if wanted[g] {
			return true
		}
	}
	return false
}
