package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
	"inkwell/pkg/helpers"
)

// PostService enforces the post lifecycle: {nonexistent} -> draft <-> published,
// owner-only mutation, and the view counter.
type PostService struct {
	Posts     repository.PostRepository
	Comments  repository.CommentRepository
	Logger    *logrus.Logger
	GCS       *storage.Client
	GCSBucket string
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Comments: comments, Logger: logger}
}

type CreatePostInput struct {
	Title    string
	Content  string
	Tags     []string
	Status   string
	ImageURL string
}

// UpdatePostInput carries a sparse patch: nil fields are left untouched.
type UpdatePostInput struct {
	Title    *string
	Content  *string
	Tags     *[]string
	Status   *string
	ImageURL *string
}

func validateTitleContent(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if helpers.StripMarkup(content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}

func validateStatus(status string) error {
	if status != entity.StatusDraft && status != entity.StatusPublished {
		return fmt.Errorf("%w: status must be draft or published", ErrValidation)
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Create allocates a post owned by ownerID. Status defaults to draft. Content
// emptiness is judged after stripping markup, so "<p></p>" does not count.
func (s *PostService) Create(ctx context.Context, ownerID string, in CreatePostInput) (*entity.Post, error) {
	if err := validateTitleContent(in.Title, in.Content); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	p := &entity.Post{
		UserID:   ownerID,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Tags:     normalizeTags(in.Tags),
		ImageURL: in.ImageURL,
		Status:   status,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, mapRepoErr(err)
	}
	p.Likes, p.Dislikes = []string{}, []string{}
	return p, nil
}

// Get returns a post with its comments and counts the read: every successful
// single-post read increments views by exactly one, whoever the viewer is.
func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, []*entity.Comment, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, mapRepoErr(err)
	}
	views, err := s.Posts.IncrementViews(ctx, id)
	if err != nil {
		return nil, nil, mapRepoErr(err)
	}
	p.Views = views

	comments, err := s.Comments.ListByPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, comments, nil
}

// List returns posts newest-first. With no filter it returns everything,
// drafts included; callers narrow by status or author.
func (s *PostService) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, error) {
	if f.Status != "" {
		if err := validateStatus(f.Status); err != nil {
			return nil, err
		}
	}
	return s.Posts.List(ctx, f)
}

// Update applies a sparse patch. Only the owner may mutate; a missing post and
// a foreign post are reported distinctly (ErrNotFound vs ErrForbidden). The
// last-modified timestamp is touched as part of the same write.
func (s *PostService) Update(ctx context.Context, actorID, postID string, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if !p.IsOwnedBy(actorID) {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Tags != nil {
		p.Tags = normalizeTags(*in.Tags)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}

	if err := validateTitleContent(p.Title, p.Content); err != nil {
		return nil, err
	}
	if err := validateStatus(p.Status); err != nil {
		return nil, err
	}

	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

// Delete removes a post. Owner-only, same 404/403 split as Update. Comments
// are cleaned up by the schema, not by this operation.
func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return mapRepoErr(err)
	}
	if !p.IsOwnedBy(actorID) {
		return ErrForbidden
	}
	return mapRepoErr(s.Posts.Delete(ctx, postID))
}

// UploadImage stores a cover image in the object store and returns its public
// URL for use as the post's image_url.
func (s *PostService) UploadImage(ctx context.Context, ownerID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", fmt.Errorf("%w: image storage is not configured", ErrValidation)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", ErrValidation)
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", ownerID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
