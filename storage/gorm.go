package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nrj111/foodgram-backend/models"
)

// GormStore implements Store on a gorm connection. The DB must be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// --- users ---

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// --- food partners ---

func (s *GormStore) CreateFoodPartner(ctx context.Context, p *models.FoodPartner) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *GormStore) FoodPartnerByEmail(ctx context.Context, email string) (*models.FoodPartner, error) {
	var p models.FoodPartner
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) FoodPartnerByID(ctx context.Context, id uint) (*models.FoodPartner, error) {
	var p models.FoodPartner
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) FoodPartnersByIDs(ctx context.Context, ids []uint) (map[uint]models.FoodPartner, error) {
	out := make(map[uint]models.FoodPartner, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var partners []models.FoodPartner
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&partners).Error; err != nil {
		return nil, translate(err)
	}
	for _, p := range partners {
		out[p.ID] = p
	}
	return out, nil
}

// --- foods ---

func (s *GormStore) CreateFood(ctx context.Context, f *models.Food) error {
	return translate(s.db.WithContext(ctx).Create(f).Error)
}

func (s *GormStore) FoodByID(ctx context.Context, id uint) (*models.Food, error) {
	var f models.Food
	if err := s.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *GormStore) ListFoods(ctx context.Context, partnerID uint) ([]models.Food, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if partnerID != 0 {
		q = q.Where("food_partner_id = ?", partnerID)
	}
	var foods []models.Food
	if err := q.Find(&foods).Error; err != nil {
		return nil, translate(err)
	}
	return foods, nil
}

func (s *GormStore) DeleteFood(ctx context.Context, id, partnerID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND food_partner_id = ?", id, partnerID).
		Delete(&models.Food{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) AdjustFoodCounter(ctx context.Context, id uint, counter FoodCounter, delta int) (int64, error) {
	col := string(counter)
	res := s.db.WithContext(ctx).Model(&models.Food{}).
		Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(fmt.Sprintf("GREATEST(%s + ?, 0)", col), delta))
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	var value int64
	if err := s.db.WithContext(ctx).Model(&models.Food{}).
		Where("id = ?", id).Pluck(col, &value).Error; err != nil {
		return 0, translate(err)
	}
	return value, nil
}

// --- engagements ---

func (s *GormStore) CreateEngagement(ctx context.Context, e *models.Engagement) error {
	return translate(s.db.WithContext(ctx).Create(e).Error)
}

func (s *GormStore) DeleteEngagement(ctx context.Context, actorID uint, actorKind string, foodID uint, action string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("actor_id = ? AND actor_kind = ? AND food_id = ? AND action = ?",
			actorID, actorKind, foodID, action).
		Delete(&models.Engagement{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) HasEngagement(ctx context.Context, actorID uint, actorKind string, foodID uint, action string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Engagement{}).
		Where("actor_id = ? AND actor_kind = ? AND food_id = ? AND action = ?",
			actorID, actorKind, foodID, action).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *GormStore) EngagedFoodIDs(ctx context.Context, actorID uint, actorKind, action string, foodIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(foodIDs))
	if len(foodIDs) == 0 {
		return out, nil
	}
	var engs []models.Engagement
	err := s.db.WithContext(ctx).
		Where("actor_id = ? AND actor_kind = ? AND action = ? AND food_id IN ?",
			actorID, actorKind, action, foodIDs).
		Find(&engs).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, e := range engs {
		out[e.FoodID] = true
	}
	return out, nil
}

func (s *GormStore) SavedFoods(ctx context.Context, actorID uint, actorKind string) ([]models.Food, error) {
	var foods []models.Food
	err := s.db.WithContext(ctx).Model(&models.Food{}).
		Joins("JOIN engagements ON engagements.food_id = foods.id").
		Where("engagements.actor_id = ? AND engagements.actor_kind = ? AND engagements.action = ?",
			actorID, actorKind, models.ActionSave).
		Order("engagements.created_at DESC").
		Find(&foods).Error
	if err != nil {
		return nil, translate(err)
	}
	return foods, nil
}

func (s *GormStore) DeleteFoodEngagements(ctx context.Context, foodID uint) error {
	return translate(s.db.WithContext(ctx).
		Where("food_id = ?", foodID).
		Delete(&models.Engagement{}).Error)
}

// --- comments ---

func (s *GormStore) CreateComment(ctx context.Context, c *models.Comment) error {
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *GormStore) CommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *GormStore) ListComments(ctx context.Context, foodID uint, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("food_id = ?", foodID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (s *GormStore) AdjustCommentLikes(ctx context.Context, id uint, delta int) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("GREATEST(like_count + ?, 0)", delta))
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	var value int64
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).Pluck("like_count", &value).Error; err != nil {
		return 0, translate(err)
	}
	return value, nil
}

// --- comment likes ---

func (s *GormStore) CreateCommentLike(ctx context.Context, cl *models.CommentLike) error {
	return translate(s.db.WithContext(ctx).Create(cl).Error)
}

func (s *GormStore) DeleteCommentLike(ctx context.Context, commentID, actorID uint, actorKind string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("comment_id = ? AND actor_id = ? AND actor_kind = ?",
			commentID, actorID, actorKind).
		Delete(&models.CommentLike{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) LikedCommentIDs(ctx context.Context, actorID uint, actorKind string, commentIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return out, nil
	}
	var likes []models.CommentLike
	err := s.db.WithContext(ctx).
		Where("actor_id = ? AND actor_kind = ? AND comment_id IN ?",
			actorID, actorKind, commentIDs).
		Find(&likes).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, l := range likes {
		out[l.CommentID] = true
	}
	return out, nil
}
