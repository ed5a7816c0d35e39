package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.PostID, c.UserID, c.Content)

	return mapError(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.post_id, c.user_id, u.username, u.first_name, u.last_name,
		       c.content, c.created_at, c.updated_at
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
	`, postID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Author.Username,
			&c.Author.FirstName, &c.Author.LastName, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Author.ID = c.UserID
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
