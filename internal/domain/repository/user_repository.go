package repository

import (
	"context"

	"inkwell/internal/domain/entity"
)

// UserRepository defines account persistence. Create returns ErrConflict when
// username or email is already taken; lookups return ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Search(ctx context.Context, q string, limit int) ([]entity.UserRef, error)
}

// FollowRepository manages the mutual follower/following edge. A single stored
// edge represents both directions, so the membership sets cannot drift apart.
type FollowRepository interface {
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]entity.UserRef, error)
	Following(ctx context.Context, userID string) ([]entity.UserRef, error)
}
