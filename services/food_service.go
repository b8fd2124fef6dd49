package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/storage"
)

const feedCacheKey = "feed:all"

type FoodPartnerRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FoodView is a food item shaped for clients: partner name resolved,
// liked/saved annotated for the requesting actor.
type FoodView struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	MediaURL      string         `json:"mediaUrl"`
	Partner       FoodPartnerRef `json:"foodPartner"`
	LikeCount     int64          `json:"likeCount"`
	SavesCount    int64          `json:"savesCount"`
	CommentsCount int64          `json:"commentsCount"`
	Liked         bool           `json:"liked"`
	Saved         bool           `json:"saved"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// NewFoodView shapes a food for the wire. Liked and Saved stay false;
// annotate fills them when a requesting actor is known.
func NewFoodView(f models.Food, partner FoodPartnerRef) FoodView {
	return FoodView{
		ID:            f.ID,
		Name:          f.Name,
		Description:   f.Description,
		Price:         f.Price,
		MediaURL:      f.MediaURL,
		Partner:       partner,
		LikeCount:     f.LikeCount,
		SavesCount:    f.SavesCount,
		CommentsCount: f.CommentsCount,
		CreatedAt:     f.CreatedAt,
	}
}

type CreateFoodInput struct {
	Name        string
	Description string
	Price       float64
	MediaURL    string
	// Media holds raw bytes when the client attached a file instead of
	// sending a URL.
	Media     []byte
	MediaType string
}

type FoodService struct {
	store storage.Store
	media *MediaStorage
	cache *FeedCache
	log   *logrus.Logger
}

func NewFoodService(store storage.Store, media *MediaStorage, cache *FeedCache, log *logrus.Logger) *FoodService {
	return &FoodService{store: store, media: media, cache: cache, log: log}
}

// Create adds a food item owned by the partner. Media is either a
// ready-made URL or an attached file uploaded to object storage.
func (s *FoodService) Create(ctx context.Context, partner *models.FoodPartner, in CreateFoodInput) (*models.Food, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	mediaURL := strings.TrimSpace(in.MediaURL)
	if mediaURL == "" {
		if len(in.Media) == 0 {
			return nil, fmt.Errorf("%w: provide mediaUrl or attach a media file", ErrValidation)
		}
		if s.media == nil {
			return nil, ErrMediaUnconfigured
		}
		url, err := s.media.Upload(ctx, in.Media, uuid.NewString(), in.MediaType)
		if err != nil {
			return nil, err
		}
		mediaURL = url
	}

	food := &models.Food{
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		MediaURL:      mediaURL,
		FoodPartnerID: partner.ID,
	}
	if err := s.store.CreateFood(ctx, food); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return food, nil
}

// Get resolves a single food with its partner name.
func (s *FoodService) Get(ctx context.Context, id uint, actor *models.Actor) (*FoodView, error) {
	food, err := s.store.FoodByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.annotate(ctx, []models.Food{*food}, actor)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns the feed, optionally filtered by partner and shuffled.
// The unfiltered base list is served from the feed cache when available;
// per-actor liked/saved flags are always computed fresh.
func (s *FoodService) List(ctx context.Context, partnerID uint, randomize bool, actor *models.Actor) ([]FoodView, error) {
	var foods []models.Food
	if partnerID == 0 {
		hit, err := s.cache.Get(ctx, feedCacheKey, &foods)
		if err != nil {
			s.log.WithError(err).Warn("feed cache read failed")
			hit = false
		}
		if !hit {
			foods, err = s.store.ListFoods(ctx, 0)
			if err != nil {
				return nil, err
			}
			if err := s.cache.Set(ctx, feedCacheKey, foods); err != nil {
				s.log.WithError(err).Warn("feed cache write failed")
			}
		}
	} else {
		var err error
		foods, err = s.store.ListFoods(ctx, partnerID)
		if err != nil {
			return nil, err
		}
	}

	if randomize {
		for i := len(foods) - 1; i > 0; i-- {
			j := rand.Intn(i + 1)
			foods[i], foods[j] = foods[j], foods[i]
		}
	}
	return s.annotate(ctx, foods, actor)
}

// Delete removes a food the partner owns. Engagement cleanup and cache
// invalidation are best-effort.
func (s *FoodService) Delete(ctx context.Context, partner *models.FoodPartner, foodID uint) error {
	if err := s.store.DeleteFood(ctx, foodID, partner.ID); err != nil {
		return err
	}
	if err := s.store.DeleteFoodEngagements(ctx, foodID); err != nil {
		s.log.WithError(err).WithField("foodId", foodID).Warn("engagement cleanup failed")
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *FoodService) annotate(ctx context.Context, foods []models.Food, actor *models.Actor) ([]FoodView, error) {
	ids := make([]uint, len(foods))
	partnerIDs := make([]uint, 0, len(foods))
	seen := make(map[uint]bool)
	for i, f := range foods {
		ids[i] = f.ID
		if !seen[f.FoodPartnerID] {
			seen[f.FoodPartnerID] = true
			partnerIDs = append(partnerIDs, f.FoodPartnerID)
		}
	}

	partners, err := s.store.FoodPartnersByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}

	liked := map[uint]bool{}
	saved := map[uint]bool{}
	if actor != nil && len(ids) > 0 {
		if liked, err = s.store.EngagedFoodIDs(ctx, actor.ID, actor.Kind, models.ActionLike, ids); err != nil {
			return nil, err
		}
		if saved, err = s.store.EngagedFoodIDs(ctx, actor.ID, actor.Kind, models.ActionSave, ids); err != nil {
			return nil, err
		}
	}

	views := make([]FoodView, 0, len(foods))
	for _, f := range foods {
		view := NewFoodView(f, FoodPartnerRef{ID: f.FoodPartnerID, Name: partners[f.FoodPartnerID].Name})
		view.Liked = liked[f.ID]
		view.Saved = saved[f.ID]
		views = append(views, view)
	}
	return views, nil
}

func (s *FoodService) invalidateFeed(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, feedCacheKey); err != nil {
		s.log.WithError(err).Warn("feed cache invalidation failed")
	}
}

// PartnerProfile is a food partner's public page: profile fields plus
// their food items, newest first.
type PartnerProfile struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	ContactName string     `json:"contactName"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	FoodItems   []FoodView `json:"foodItems"`
}

func (s *FoodService) PartnerProfile(ctx context.Context, partnerID uint, actor *models.Actor) (*PartnerProfile, error) {
	partner, err := s.store.FoodPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	items, err := s.List(ctx, partnerID, false, actor)
	if err != nil {
		return nil, err
	}
	return &PartnerProfile{
		ID:          partner.ID,
		Name:        partner.Name,
		ContactName: partner.ContactName,
		Phone:       partner.Phone,
		Address:     partner.Address,
		FoodItems:   items,
	}, nil
}
