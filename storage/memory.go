package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nrj111/foodgram-backend/models"
)

// MemoryStore implements Store in memory. It enforces the same unique
// constraints and counter clamping as the gorm store so tests exercise
// honest toggle semantics without a database.
type MemoryStore struct {
	mu           sync.Mutex
	nextID       uint
	users        map[uint]*models.User
	partners     map[uint]*models.FoodPartner
	foods        map[uint]*models.Food
	engagements  map[uint]*models.Engagement
	comments     map[uint]*models.Comment
	commentLikes map[uint]*models.CommentLike
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[uint]*models.User),
		partners:     make(map[uint]*models.FoodPartner),
		foods:        make(map[uint]*models.Food),
		engagements:  make(map[uint]*models.Engagement),
		comments:     make(map[uint]*models.Comment),
		commentLikes: make(map[uint]*models.CommentLike),
	}
}

func (s *MemoryStore) id() uint {
	s.nextID++
	return s.nextID
}

// --- users ---

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	u.ID = s.id()
	u.CreatedAt = time.Now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// DeleteUser exists for tests that need a dangling token (principal row
// removed after issuance).
func (s *MemoryStore) DeleteUser(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// --- food partners ---

func (s *MemoryStore) CreateFoodPartner(ctx context.Context, p *models.FoodPartner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.partners {
		if existing.Email == p.Email {
			return ErrDuplicate
		}
	}
	p.ID = s.id()
	p.CreatedAt = time.Now()
	cp := *p
	s.partners[p.ID] = &cp
	return nil
}

func (s *MemoryStore) FoodPartnerByEmail(ctx context.Context, email string) (*models.FoodPartner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.partners {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FoodPartnerByID(ctx context.Context, id uint) (*models.FoodPartner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.partners[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) FoodPartnersByIDs(ctx context.Context, ids []uint) (map[uint]models.FoodPartner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint]models.FoodPartner, len(ids))
	for _, id := range ids {
		if p, ok := s.partners[id]; ok {
			out[id] = *p
		}
	}
	return out, nil
}

// --- foods ---

func (s *MemoryStore) CreateFood(ctx context.Context, f *models.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.id()
	f.CreatedAt = time.Now()
	cp := *f
	s.foods[f.ID] = &cp
	return nil
}

func (s *MemoryStore) FoodByID(ctx context.Context, id uint) (*models.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.foods[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *MemoryStore) ListFoods(ctx context.Context, partnerID uint) ([]models.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var foods []models.Food
	for _, f := range s.foods {
		if partnerID != 0 && f.FoodPartnerID != partnerID {
			continue
		}
		foods = append(foods, *f)
	}
	sort.Slice(foods, func(i, j int) bool { return foods[i].ID > foods[j].ID })
	return foods, nil
}

func (s *MemoryStore) DeleteFood(ctx context.Context, id, partnerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.foods[id]
	if !ok || f.FoodPartnerID != partnerID {
		return ErrNotFound
	}
	delete(s.foods, id)
	return nil
}

func (s *MemoryStore) AdjustFoodCounter(ctx context.Context, id uint, counter FoodCounter, delta int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.foods[id]
	if !ok {
		return 0, ErrNotFound
	}
	var target *int64
	switch counter {
	case FoodLikes:
		target = &f.LikeCount
	case FoodSaves:
		target = &f.SavesCount
	case FoodComments:
		target = &f.CommentsCount
	default:
		return 0, ErrNotFound
	}
	*target += int64(delta)
	if *target < 0 {
		*target = 0
	}
	return *target, nil
}

// --- engagements ---

func (s *MemoryStore) CreateEngagement(ctx context.Context, e *models.Engagement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.engagements {
		if existing.ActorID == e.ActorID && existing.ActorKind == e.ActorKind &&
			existing.FoodID == e.FoodID && existing.Action == e.Action {
			return ErrDuplicate
		}
	}
	e.ID = s.id()
	e.CreatedAt = time.Now()
	cp := *e
	s.engagements[e.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteEngagement(ctx context.Context, actorID uint, actorKind string, foodID uint, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.engagements {
		if e.ActorID == actorID && e.ActorKind == actorKind && e.FoodID == foodID && e.Action == action {
			delete(s.engagements, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) HasEngagement(ctx context.Context, actorID uint, actorKind string, foodID uint, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.engagements {
		if e.ActorID == actorID && e.ActorKind == actorKind && e.FoodID == foodID && e.Action == action {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) EngagedFoodIDs(ctx context.Context, actorID uint, actorKind, action string, foodIDs []uint) (map[uint]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint]bool, len(foodIDs))
	for _, id := range foodIDs {
		wanted[id] = true
	}
	out := make(map[uint]bool)
	for _, e := range s.engagements {
		if e.ActorID == actorID && e.ActorKind == actorKind && e.Action == action && wanted[e.FoodID] {
			out[e.FoodID] = true
		}
	}
	return out, nil
}

func (s *MemoryStore) SavedFoods(ctx context.Context, actorID uint, actorKind string) ([]models.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var saves []*models.Engagement
	for _, e := range s.engagements {
		if e.ActorID == actorID && e.ActorKind == actorKind && e.Action == models.ActionSave {
			saves = append(saves, e)
		}
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].ID > saves[j].ID })
	var foods []models.Food
	for _, e := range saves {
		if f, ok := s.foods[e.FoodID]; ok {
			foods = append(foods, *f)
		}
	}
	return foods, nil
}

func (s *MemoryStore) DeleteFoodEngagements(ctx context.Context, foodID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.engagements {
		if e.FoodID == foodID {
			delete(s.engagements, id)
		}
	}
	return nil
}

// --- comments ---

func (s *MemoryStore) CreateComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	c.CreatedAt = time.Now()
	cp := *c
	s.comments[c.ID] = &cp
	return nil
}

func (s *MemoryStore) CommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) ListComments(ctx context.Context, foodID uint, limit int) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var comments []models.Comment
	for _, c := range s.comments {
		if c.FoodID == foodID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

func (s *MemoryStore) AdjustCommentLikes(ctx context.Context, id uint, delta int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return 0, ErrNotFound
	}
	c.LikeCount += int64(delta)
	if c.LikeCount < 0 {
		c.LikeCount = 0
	}
	return c.LikeCount, nil
}

// --- comment likes ---

func (s *MemoryStore) CreateCommentLike(ctx context.Context, cl *models.CommentLike) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.commentLikes {
		if existing.CommentID == cl.CommentID && existing.ActorID == cl.ActorID && existing.ActorKind == cl.ActorKind {
			return ErrDuplicate
		}
	}
	cl.ID = s.id()
	cl.CreatedAt = time.Now()
	cp := *cl
	s.commentLikes[cl.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteCommentLike(ctx context.Context, commentID, actorID uint, actorKind string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cl := range s.commentLikes {
		if cl.CommentID == commentID && cl.ActorID == actorID && cl.ActorKind == actorKind {
			delete(s.commentLikes, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) LikedCommentIDs(ctx context.Context, actorID uint, actorKind string, commentIDs []uint) (map[uint]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}
	out := make(map[uint]bool)
	for _, cl := range s.commentLikes {
		if cl.ActorID == actorID && cl.ActorKind == actorKind && wanted[cl.CommentID] {
			out[cl.CommentID] = true
		}
	}
	return out, nil
}
