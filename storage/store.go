// Package storage defines the persistence contract the services are
// written against, with a gorm/postgres implementation for production and
// an in-memory implementation for tests. Sentinel errors let handlers
// distinguish failure scenarios without inspecting driver errors.
package storage

import (
	"context"
	"errors"

	"github.com/nrj111/foodgram-backend/models"
)

// ErrNotFound is returned when a referenced record does not exist, or is
// not visible to the caller (e.g. deleting a food another partner owns).
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects an insert:
// an email already registered, or an engagement row that already exists.
var ErrDuplicate = errors.New("duplicate record")

// FoodCounter names a denormalized counter column on the foods table.
type FoodCounter string

const (
	FoodLikes    FoodCounter = "like_count"
	FoodSaves    FoodCounter = "saves_count"
	FoodComments FoodCounter = "comments_count"
)

type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)

	CreateFoodPartner(ctx context.Context, p *models.FoodPartner) error
	FoodPartnerByEmail(ctx context.Context, email string) (*models.FoodPartner, error)
	FoodPartnerByID(ctx context.Context, id uint) (*models.FoodPartner, error)
	FoodPartnersByIDs(ctx context.Context, ids []uint) (map[uint]models.FoodPartner, error)

	CreateFood(ctx context.Context, f *models.Food) error
	FoodByID(ctx context.Context, id uint) (*models.Food, error)
	// ListFoods returns all foods newest-first; partnerID 0 means no filter.
	ListFoods(ctx context.Context, partnerID uint) ([]models.Food, error)
	// DeleteFood removes a food only if partnerID owns it.
	DeleteFood(ctx context.Context, id, partnerID uint) error
	// AdjustFoodCounter atomically applies delta, clamped at zero, and
	// returns the value re-read after the mutation. The increment and the
	// read are separate round trips; only the increment is atomic.
	AdjustFoodCounter(ctx context.Context, id uint, counter FoodCounter, delta int) (int64, error)

	CreateEngagement(ctx context.Context, e *models.Engagement) error
	// DeleteEngagement reports whether a record existed to delete.
	DeleteEngagement(ctx context.Context, actorID uint, actorKind string, foodID uint, action string) (bool, error)
	HasEngagement(ctx context.Context, actorID uint, actorKind string, foodID uint, action string) (bool, error)
	// EngagedFoodIDs batch-resolves which of foodIDs the actor has engaged.
	EngagedFoodIDs(ctx context.Context, actorID uint, actorKind, action string, foodIDs []uint) (map[uint]bool, error)
	// SavedFoods lists the foods an actor has saved, most recent save first.
	SavedFoods(ctx context.Context, actorID uint, actorKind string) ([]models.Food, error)
	DeleteFoodEngagements(ctx context.Context, foodID uint) error

	CreateComment(ctx context.Context, c *models.Comment) error
	CommentByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListComments returns up to limit comments for a food, newest first.
	ListComments(ctx context.Context, foodID uint, limit int) ([]models.Comment, error)
	// AdjustCommentLikes mirrors AdjustFoodCounter for a comment's likes.
	AdjustCommentLikes(ctx context.Context, id uint, delta int) (int64, error)

	CreateCommentLike(ctx context.Context, cl *models.CommentLike) error
	DeleteCommentLike(ctx context.Context, commentID, actorID uint, actorKind string) (bool, error)
	LikedCommentIDs(ctx context.Context, actorID uint, actorKind string, commentIDs []uint) (map[uint]bool, error)
}
