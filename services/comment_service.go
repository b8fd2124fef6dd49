package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/models"
	"github.com/nrj111/foodgram-backend/storage"
	"github.com/nrj111/foodgram-backend/utils"
)

const (
	maxCommentLength = 500
	commentPageLimit = 200
)

// CommentAuthor carries what the client needs to label a comment. Names
// are the author's display name when known at write time, otherwise the
// principal kind.
type CommentAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CommentView struct {
	ID        uint          `json:"id"`
	Text      string        `json:"text"`
	LikeCount int64         `json:"likeCount"`
	Liked     bool          `json:"liked"`
	Author    CommentAuthor `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
	RelTime   string        `json:"relTime"`
}

type CommentService struct {
	store storage.Store
	hub   *RealtimeHub
	log   *logrus.Logger
}

func NewCommentService(store storage.Store, hub *RealtimeHub, log *logrus.Logger) *CommentService {
	return &CommentService{store: store, hub: hub, log: log}
}

// Add creates a comment on a food. The food's comment counter is a
// best-effort side effect: if the adjustment fails the comment still
// stands and the failure is only logged.
func (s *CommentService) Add(ctx context.Context, actor models.Actor, foodID uint, text string) (*CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if len([]rune(text)) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment text must be at most %d characters", ErrValidation, maxCommentLength)
	}
	if _, err := s.store.FoodByID(ctx, foodID); err != nil {
		return nil, err
	}

	comment := &models.Comment{FoodID: foodID, Text: text}
	if actor.Kind == models.ActorKindPartner {
		comment.FoodPartnerID = &actor.ID
	} else {
		comment.UserID = &actor.ID
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if _, err := s.store.AdjustFoodCounter(ctx, foodID, storage.FoodComments, 1); err != nil {
		s.log.WithError(err).WithField("foodId", foodID).Warn("comment counter update failed")
	}
	if s.hub != nil {
		s.hub.Broadcast(foodID, map[string]any{
			"kind":      "comment.created",
			"foodId":    foodID,
			"commentId": comment.ID,
		})
	}

	return &CommentView{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    CommentAuthor{ID: actor.ID, Name: actor.Name},
		CreatedAt: comment.CreatedAt,
		RelTime:   utils.RelativeAge(comment.CreatedAt, time.Now()),
	}, nil
}

// List returns up to 200 comments for a food, newest first. When an
// actor is present each comment is annotated with whether that actor has
// liked it; the annotation is resolved in one batch lookup.
func (s *CommentService) List(ctx context.Context, foodID uint, actor *models.Actor) ([]CommentView, error) {
	comments, err := s.store.ListComments(ctx, foodID, commentPageLimit)
	if err != nil {
		return nil, err
	}

	liked := map[uint]bool{}
	if actor != nil && len(comments) > 0 {
		ids := make([]uint, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		liked, err = s.store.LikedCommentIDs(ctx, actor.ID, actor.Kind, ids)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		author := CommentAuthor{Name: "User"}
		if c.UserID != nil {
			author.ID = *c.UserID
		} else if c.FoodPartnerID != nil {
			author.ID = *c.FoodPartnerID
			author.Name = "Partner"
		}
		views = append(views, CommentView{
			ID:        c.ID,
			Text:      c.Text,
			LikeCount: c.LikeCount,
			Liked:     liked[c.ID],
			Author:    author,
			CreatedAt: c.CreatedAt,
			RelTime:   utils.RelativeAge(c.CreatedAt, now),
		})
	}
	return views, nil
}

// ToggleLike runs the same absent/present state machine as food
// engagement, scoped per actor kind: a user's like and a partner's like
// on the same comment are independent.
func (s *CommentService) ToggleLike(ctx context.Context, actor models.Actor, commentID uint) (ToggleResult, error) {
	if _, err := s.store.CommentByID(ctx, commentID); err != nil {
		return ToggleResult{}, err
	}

	removed, err := s.store.DeleteCommentLike(ctx, commentID, actor.ID, actor.Kind)
	if err != nil {
		return ToggleResult{}, err
	}
	if removed {
		count, err := s.store.AdjustCommentLikes(ctx, commentID, -1)
		if err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{Active: false, Count: count}, nil
	}

	err = s.store.CreateCommentLike(ctx, &models.CommentLike{
		CommentID: commentID,
		ActorID:   actor.ID,
		ActorKind: actor.Kind,
	})
	var count int64
	switch {
	case err == nil:
		count, err = s.store.AdjustCommentLikes(ctx, commentID, 1)
		if err != nil {
			return ToggleResult{}, err
		}
	case errors.Is(err, storage.ErrDuplicate):
		count, err = s.store.AdjustCommentLikes(ctx, commentID, 0)
		if err != nil {
			return ToggleResult{}, err
		}
	default:
		return ToggleResult{}, err
	}
	return ToggleResult{Active: true, Count: count}, nil
}
