package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/storage"
)

func seedPartner(t *testing.T, store storage.Store) *models.FoodPartner {
	t.Helper()
	partner := &models.FoodPartner{
		Name: "Tasty", ContactName: "Bob", Phone: "555", Address: "Main St",
		Email: "tasty@example.com", Password: "hash",
	}
	require.NoError(t, store.CreateFoodPartner(context.Background(), partner))
	return partner
}

func TestFoodService_CreateValidation(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFoodService(store, nil, nil, testLogger())
	ctx := context.Background()
	partner := seedPartner(t, store)

	_, err := svc.Create(ctx, partner, CreateFoodInput{Name: "  ", Price: 1, MediaURL: "https://cdn/x.mp4"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, partner, CreateFoodInput{Name: "Ramen", Price: -1, MediaURL: "https://cdn/x.mp4"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, partner, CreateFoodInput{Name: "Ramen", Price: 1})
	assert.ErrorIs(t, err, ErrValidation)

	// an attached file without configured object storage is a distinct error
	_, err = svc.Create(ctx, partner, CreateFoodInput{Name: "Ramen", Price: 1, Media: []byte("bytes"), MediaType: "video/mp4"})
	assert.ErrorIs(t, err, ErrMediaUnconfigured)

	food, err := svc.Create(ctx, partner, CreateFoodInput{
		Name: " Ramen ", Description: " rich ", Price: 9.99, MediaURL: " https://cdn/x.mp4 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ramen", food.Name)
	assert.Equal(t, "rich", food.Description)
	assert.Equal(t, "https://cdn/x.mp4", food.MediaURL)
	assert.Equal(t, partner.ID, food.FoodPartnerID)
}

func TestFoodService_ListAnnotatesForActor(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFoodService(store, nil, nil, testLogger())
	engagement := NewEngagementService(store, nil, testLogger())
	ctx := context.Background()
	partner := seedPartner(t, store)

	first, err := svc.Create(ctx, partner, CreateFoodInput{Name: "Ramen", Price: 9.99, MediaURL: "https://cdn/1.mp4"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, partner, CreateFoodInput{Name: "Udon", Price: 8, MediaURL: "https://cdn/2.mp4"})
	require.NoError(t, err)

	actor := models.Actor{ID: 1, Kind: models.ActorKindUser}
	_, err = engagement.Toggle(ctx, actor, first.ID, models.ActionLike)
	require.NoError(t, err)

	views, err := svc.List(ctx, 0, false, &actor)
	require.NoError(t, err)
	require.Len(t, views, 2)
	byID := map[uint]FoodView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.True(t, byID[first.ID].Liked)
	assert.Equal(t, int64(1), byID[first.ID].LikeCount)
	assert.Equal(t, "Tasty", byID[first.ID].Partner.Name)

	// anonymous listing carries counts but no per-actor flags
	views, err = svc.List(ctx, 0, false, nil)
	require.NoError(t, err)
	for _, v := range views {
		assert.False(t, v.Liked)
		assert.False(t, v.Saved)
	}
}

func TestFoodService_ListFiltersByPartner(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFoodService(store, nil, nil, testLogger())
	ctx := context.Background()
	partner := seedPartner(t, store)
	other := &models.FoodPartner{Name: "Other", ContactName: "C", Phone: "1", Address: "A", Email: "o@example.com", Password: "h"}
	require.NoError(t, store.CreateFoodPartner(ctx, other))

	_, err := svc.Create(ctx, partner, CreateFoodInput{Name: "Ramen", Price: 9.99, MediaURL: "https://cdn/1.mp4"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, CreateFoodInput{Name: "Taco", Price: 3, MediaURL: "https://cdn/2.mp4"})
	require.NoError(t, err)

	views, err := svc.List(ctx, partner.ID, false, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Ramen", views[0].Name)
}

func TestFoodService_RandomizeKeepsSameSet(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFoodService(store, nil, nil, testLogger())
	ctx := context.Background()
	partner := seedPartner(t, store)

	want := map[uint]bool{}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		food, err := svc.Create(ctx, partner, CreateFoodInput{Name: name, Price: 1, MediaURL: "https://cdn/" + name})
		require.NoError(t, err)
		want[food.ID] = true
	}

	views, err := svc.List(ctx, 0, true, nil)
	require.NoError(t, err)
	require.Len(t, views, len(want))
	for _, v := range views {
		assert.True(t, want[v.ID])
	}
}

func TestFoodService_DeleteScrubsEngagements(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFoodService(store, nil, nil, testLogger())
	engagement := NewEngagementService(store, nil, testLogger())
	ctx := context.Background()
	partner := seedPartner(t, store)

	food, err := svc.Create(ctx, partner, CreateFoodInput{Name: "Ramen", Price: 9.99, MediaURL: "https://cdn/1.mp4"})
	require.NoError(t, err)

	actor := models.Actor{ID: 1, Kind: models.ActorKindUser}
	_, err = engagement.Toggle(ctx, actor, food.ID, models.ActionSave)
	require.NoError(t, err)

	// a non-owner cannot delete
	imposter := &models.FoodPartner{Name: "X", ContactName: "X", Phone: "1", Address: "A", Email: "x@example.com", Password: "h"}
	require.NoError(t, store.CreateFoodPartner(ctx, imposter))
	assert.ErrorIs(t, svc.Delete(ctx, imposter, food.ID), storage.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, partner, food.ID))
	_, err = store.FoodByID(ctx, food.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	saved, err := engagement.SavedFoods(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, saved)
}
