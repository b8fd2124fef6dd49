package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/storage"
)

// ToggleResult reports the state after a toggle and the counter value
// re-read from the store, which is the only count clients should trust.
type ToggleResult struct {
	Active bool
	Count  int64
}

// EngagementService runs the like/save toggle state machine. Uniqueness
// of (actor, food, action) is enforced by the storage layer; this service
// only sequences the steps and keeps the denormalized counter moving.
type EngagementService struct {
	store storage.Store
	hub   *RealtimeHub
	log   *logrus.Logger
}

func NewEngagementService(store storage.Store, hub *RealtimeHub, log *logrus.Logger) *EngagementService {
	return &EngagementService{store: store, hub: hub, log: log}
}

func counterFor(action string) storage.FoodCounter {
	if action == models.ActionSave {
		return storage.FoodSaves
	}
	return storage.FoodLikes
}

// Toggle flips the (actor, food, action) record between absent and
// present. The returned count is re-read after the atomic adjustment, so
// concurrent togglers converge on the same visible value.
func (s *EngagementService) Toggle(ctx context.Context, actor models.Actor, foodID uint, action string) (ToggleResult, error) {
	if _, err := s.store.FoodByID(ctx, foodID); err != nil {
		return ToggleResult{}, err
	}
	counter := counterFor(action)

	removed, err := s.store.DeleteEngagement(ctx, actor.ID, actor.Kind, foodID, action)
	if err != nil {
		return ToggleResult{}, err
	}
	if removed {
		count, err := s.store.AdjustFoodCounter(ctx, foodID, counter, -1)
		if err != nil {
			return ToggleResult{}, err
		}
		s.broadcast(foodID, action, false, count)
		return ToggleResult{Active: false, Count: count}, nil
	}

	err = s.store.CreateEngagement(ctx, &models.Engagement{
		ActorID:   actor.ID,
		ActorKind: actor.Kind,
		FoodID:    foodID,
		Action:    action,
	})
	var count int64
	switch {
	case err == nil:
		count, err = s.store.AdjustFoodCounter(ctx, foodID, counter, 1)
		if err != nil {
			return ToggleResult{}, err
		}
	case errors.Is(err, storage.ErrDuplicate):
		// A concurrent toggle from the same actor won the insert. The
		// record is present either way; report the current count without
		// adjusting it again.
		count, err = s.store.AdjustFoodCounter(ctx, foodID, counter, 0)
		if err != nil {
			return ToggleResult{}, err
		}
	default:
		return ToggleResult{}, err
	}
	s.broadcast(foodID, action, true, count)
	return ToggleResult{Active: true, Count: count}, nil
}

// SavedFoods lists the actor's saved foods, most recent save first.
func (s *EngagementService) SavedFoods(ctx context.Context, actor models.Actor) ([]models.Food, error) {
	return s.store.SavedFoods(ctx, actor.ID, actor.Kind)
}

func (s *EngagementService) broadcast(foodID uint, action string, active bool, count int64) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(foodID, map[string]any{
		"kind":   "food.engagement",
		"foodId": foodID,
		"action": action,
		"active": active,
		"count":  count,
	})
}
