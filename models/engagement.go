package models

import "time"

// Actor kinds and engagement actions. Stored as short strings so the
// composite unique indexes stay readable in the schema.
const (
	ActorKindUser    = "user"
	ActorKindPartner = "partner"

	ActionLike = "like"
	ActionSave = "save"
)

// Actor identifies the authenticated principal acting on a food or
// comment, together with a display name for response shaping.
type Actor struct {
	ID   uint
	Kind string
	Name string
}

// Engagement is one like or save. The composite unique index makes a
// double insert for the same (actor, food, action) impossible even under
// concurrent toggles; the index, not an in-process lock, is the
// serialization point. No DeletedAt: toggle records are removed for real
// so the index never blocks a re-toggle.
type Engagement struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	ActorID   uint   `gorm:"not null;uniqueIndex:idx_engagement_identity"`
	ActorKind string `gorm:"size:16;not null;uniqueIndex:idx_engagement_identity"`
	FoodID    uint   `gorm:"not null;index;uniqueIndex:idx_engagement_identity"`
	Action    string `gorm:"size:16;not null;uniqueIndex:idx_engagement_identity"`
}

// CommentLike mirrors Engagement for comments. A user's like and a
// partner's like on the same comment are independent records.
type CommentLike struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time
	CommentID uint   `gorm:"not null;index;uniqueIndex:idx_comment_like_identity"`
	ActorID   uint   `gorm:"not null;uniqueIndex:idx_comment_like_identity"`
	ActorKind string `gorm:"size:16;not null;uniqueIndex:idx_comment_like_identity"`
}
