package repository

import (
	"context"

	"inkwell/internal/domain/entity"
)

// Reaction values stored in post_reactions. One row per (post, account), so an
// account can never hold a like and a dislike at the same time.
const (
	ReactionLike    = 1
	ReactionDislike = -1
)

// PostFilter narrows List results. Zero values mean "no filter".
type PostFilter struct {
	Status   string
	AuthorID string
	Limit    int
}

// PostRepository defines post persistence. GetByID loads reaction membership
// alongside the post; IncrementViews is a single atomic update.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, f PostFilter) ([]*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)

	GetReaction(ctx context.Context, postID, userID string) (int, error) // 0 when absent
	SetReaction(ctx context.Context, postID, userID string, value int) error
	ClearReaction(ctx context.Context, postID, userID string) error
	Reactions(ctx context.Context, postID string) (likes, dislikes []string, err error)
}

// CommentRepository persists comments. ListByPost returns newest-first.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error)
}
