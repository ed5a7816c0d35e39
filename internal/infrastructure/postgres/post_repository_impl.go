package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, title, content, tags, image_url, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id, views, created_at, updated_at
	`, p.UserID, p.Title, p.Content, p.Tags, p.ImageURL, p.Status)

	return mapError(row.Scan(&p.ID, &p.Views, &p.CreatedAt, &p.UpdatedAt))
}

const postSelect = `
	SELECT p.id, p.user_id, u.username, u.first_name, u.last_name,
	       p.title, p.content, p.tags, COALESCE(p.image_url, ''), p.status,
	       p.views, p.created_at, p.updated_at
	FROM posts p JOIN users u ON u.id = p.user_id`

func scanPost(row interface{ Scan(...any) error }) (*entity.Post, error) {
	p := &entity.Post{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Author.Username, &p.Author.FirstName, &p.Author.LastName,
		&p.Title, &p.Content, &p.Tags, &p.ImageURL, &p.Status,
		&p.Views, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Author.ID = p.UserID
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	p.Likes, p.Dislikes, err = r.Reactions(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "p.status = $"+strconv.Itoa(len(args)))
	}
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		conds = append(conds, "p.user_id = $"+strconv.Itoa(len(args)))
	}
	q := postSelect
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY p.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	posts := []*entity.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update writes the mutable fields and touches updated_at in the same
// statement. The owning user_id is never part of the SET list.
func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $1, content = $2, tags = $3, image_url = NULLIF($4, ''),
		    status = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, p.Title, p.Content, p.Tags, p.ImageURL, p.Status, p.ID)
	return mapError(row.Scan(&p.UpdatedAt))
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.pool.QueryRow(ctx, `
		UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views
	`, id).Scan(&views)
	return views, mapError(err)
}

func (r *PostRepository) GetReaction(ctx context.Context, postID, userID string) (int, error) {
	var value int
	err := r.pool.QueryRow(ctx, `
		SELECT value FROM post_reactions WHERE post_id = $1 AND user_id = $2
	`, postID, userID).Scan(&value)
	if err != nil {
		if mapped := mapError(err); mapped == repository.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return value, nil
}

// SetReaction upserts the (post, account) row. The overwrite is what keeps
// likes and dislikes mutually exclusive on write.
func (r *PostRepository) SetReaction(ctx context.Context, postID, userID string, value int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO post_reactions (post_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO UPDATE SET value = excluded.value, created_at = now()
	`, postID, userID, value)
	return mapError(err)
}

func (r *PostRepository) ClearReaction(ctx context.Context, postID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM post_reactions WHERE post_id = $1 AND user_id = $2
	`, postID, userID)
	return mapError(err)
}

func (r *PostRepository) Reactions(ctx context.Context, postID string) (likes, dislikes []string, err error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, value FROM post_reactions WHERE post_id = $1 ORDER BY created_at
	`, postID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	defer rows.Close()

	likes, dislikes = []string{}, []string{}
	for rows.Next() {
		var (
			uid   string
			value int
		)
		if err := rows.Scan(&uid, &value); err != nil {
			return nil, nil, err
		}
		if value == repository.ReactionLike {
			likes = append(likes, uid)
		} else {
			dislikes = append(dislikes, uid)
		}
	}
	return likes, dislikes, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
