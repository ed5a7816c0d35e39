package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
)

// FollowRepository stores the social graph as single-row mutual edges in the
// follows table. Because one row covers both directions, followers/following
// stay symmetric without cross-document reconciliation.
type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)
	`, followerID, followeeID).Scan(&exists)
	return exists, mapError(err)
}

func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	// ON CONFLICT makes a repeated follow of the same target a no-op rather
	// than an error under concurrent toggles.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`, followerID, followeeID)
	return mapError(err)
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2
	`, followerID, followeeID)
	return mapError(err)
}

func (r *FollowRepository) Followers(ctx context.Context, userID string) ([]entity.UserRef, error) {
	return r.edgeRefs(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC
	`, userID)
}

func (r *FollowRepository) Following(ctx context.Context, userID string) ([]entity.UserRef, error) {
	return r.edgeRefs(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name
		FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`, userID)
}

func (r *FollowRepository) edgeRefs(ctx context.Context, query, userID string) ([]entity.UserRef, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	refs := []entity.UserRef{}
	for rows.Next() {
		var ref entity.UserRef
		if err := rows.Scan(&ref.ID, &ref.Username, &ref.FirstName, &ref.LastName); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
