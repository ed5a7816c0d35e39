package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
)

func newPostService(t *testing.T) (*PostService, *memPosts, *memComments) {
	t.Helper()
	posts := newMemPosts()
	comments := newMemComments()
	logger := logrus.New()
	logger.SetOutput(testWriter{t})
	return NewPostService(posts, comments, logger), posts, comments
}

func createTestPost(t *testing.T, svc *PostService, owner, status string) *entity.Post {
	t.Helper()
	p, err := svc.Create(context.Background(), owner, CreatePostInput{
		Title:   "A title",
		Content: "<p>some content</p>",
		Status:  status,
	})
	require.NoError(t, err)
	return p
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc, _, _ := newPostService(t)

	p, err := svc.Create(context.Background(), "user-1", CreatePostInput{
		Title:   "  Untrimmed  ",
		Content: "<p>hello</p>",
		Tags:    []string{" go ", "", "blog"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, p.Status)
	assert.Equal(t, "Untrimmed", p.Title)
	assert.Equal(t, []string{"go", "blog"}, p.Tags)
	assert.Equal(t, "user-1", p.UserID)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Dislikes)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u", CreatePostInput{Title: "   ", Content: "<p>x</p>"})
	assert.ErrorIs(t, err, ErrValidation)

	// Markup-only content counts as empty.
	_, err = svc.Create(ctx, "u", CreatePostInput{Title: "t", Content: "<p>  </p><br/>"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "u", CreatePostInput{Title: "t", Content: "<p>x</p>", Status: "archived"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCountsView(t *testing.T) {
	svc, _, _ := newPostService(t)
	p := createTestPost(t, svc, "u", entity.StatusPublished)

	got, comments, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
	assert.Empty(t, comments)

	got, _, err = svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestGetUnknownPost(t *testing.T) {
	svc, _, _ := newPostService(t)
	_, _, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	svc, _, _ := newPostService(t)
	createTestPost(t, svc, "a", entity.StatusDraft)
	createTestPost(t, svc, "a", entity.StatusPublished)
	createTestPost(t, svc, "b", entity.StatusPublished)

	all, err := svc.List(context.Background(), repository.PostFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "no filter returns drafts too")

	published, err := svc.List(context.Background(), repository.PostFilter{Status: entity.StatusPublished})
	require.NoError(t, err)
	assert.Len(t, published, 2)

	byAuthor, err := svc.List(context.Background(), repository.PostFilter{AuthorID: "a"})
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	_, err = svc.List(context.Background(), repository.PostFilter{Status: "bogus"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateSparsePatch(t *testing.T) {
	svc, _, _ := newPostService(t)
	p := createTestPost(t, svc, "owner", entity.StatusDraft)

	newStatus := entity.StatusPublished
	got, err := svc.Update(context.Background(), "owner", p.ID, UpdatePostInput{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPublished, got.Status)
	assert.Equal(t, "A title", got.Title, "untouched fields keep their value")
	assert.Equal(t, "<p>some content</p>", got.Content)

	// Publish -> draft is a legal transition.
	back := entity.StatusDraft
	got, err = svc.Update(context.Background(), "owner", p.ID, UpdatePostInput{Status: &back})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, got.Status)
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	svc, _, _ := newPostService(t)
	p := createTestPost(t, svc, "owner", entity.StatusDraft)

	empty := "   "
	_, err := svc.Update(context.Background(), "owner", p.ID, UpdatePostInput{Title: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	markupOnly := "<div></div>"
	_, err = svc.Update(context.Background(), "owner", p.ID, UpdatePostInput{Content: &markupOnly})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateOwnerOnly(t *testing.T) {
	svc, _, _ := newPostService(t)
	p := createTestPost(t, svc, "owner", entity.StatusDraft)

	title := "hijacked"
	_, err := svc.Update(context.Background(), "intruder", p.ID, UpdatePostInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(context.Background(), "owner", "missing", UpdatePostInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newPostService(t)
	p := createTestPost(t, svc, "owner", entity.StatusPublished)

	assert.ErrorIs(t, svc.Delete(context.Background(), "intruder", p.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), "owner", "missing"), ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), "owner", p.ID))
	_, _, err := svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadImageUnconfigured(t *testing.T) {
	svc, _, _ := newPostService(t)
	_, err := svc.UploadImage(context.Background(), "owner", nil, "cover.png", "image/png")
	assert.ErrorIs(t, err, ErrValidation)
}
