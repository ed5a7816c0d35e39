package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
)

// In-memory repositories backing the service tests. They mirror the
// constraints the real schema enforces: unique username/email, one reaction
// row per (post, account), one follow row per (follower, followee).

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
	seq  int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*entity.User{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.byID {
		if ex.Username == u.Username || ex.Email == u.Email {
			return repository.ErrConflict
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (m *memUsers) Search(_ context.Context, q string, limit int) ([]entity.UserRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q = strings.ToLower(q)
	out := []entity.UserRef{}
	for _, u := range m.byID {
		hay := strings.ToLower(u.Username + " " + u.FirstName + " " + u.LastName)
		if strings.Contains(hay, q) {
			out = append(out, u.Ref())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type followEdge struct{ follower, followee string }

type memFollows struct {
	mu    sync.Mutex
	edges map[followEdge]bool
	users *memUsers
}

func newMemFollows(users *memUsers) *memFollows {
	return &memFollows{edges: map[followEdge]bool{}, users: users}
}

func (m *memFollows) IsFollowing(_ context.Context, followerID, followeeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edges[followEdge{followerID, followeeID}], nil
}

func (m *memFollows) Follow(_ context.Context, followerID, followeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges[followEdge{followerID, followeeID}] = true
	return nil
}

func (m *memFollows) Unfollow(_ context.Context, followerID, followeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edges, followEdge{followerID, followeeID})
	return nil
}

func (m *memFollows) Followers(ctx context.Context, userID string) ([]entity.UserRef, error) {
	return m.refs(ctx, userID, false)
}

func (m *memFollows) Following(ctx context.Context, userID string) ([]entity.UserRef, error) {
	return m.refs(ctx, userID, true)
}

func (m *memFollows) refs(ctx context.Context, userID string, following bool) ([]entity.UserRef, error) {
	m.mu.Lock()
	ids := []string{}
	for e := range m.edges {
		if following && e.follower == userID {
			ids = append(ids, e.followee)
		}
		if !following && e.followee == userID {
			ids = append(ids, e.follower)
		}
	}
	m.mu.Unlock()

	sort.Strings(ids)
	out := []entity.UserRef{}
	for _, id := range ids {
		if u, err := m.users.GetByID(ctx, id); err == nil {
			out = append(out, u.Ref())
		}
	}
	return out, nil
}

type reactionKey struct{ post, user string }

type memPosts struct {
	mu        sync.Mutex
	byID      map[string]*entity.Post
	reactions map[reactionKey]int
	seq       int
}

func newMemPosts() *memPosts {
	return &memPosts{byID: map[string]*entity.Post{}, reactions: map[reactionKey]int{}}
}

func (m *memPosts) Create(_ context.Context, p *entity.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = fmt.Sprintf("post-%d", m.seq)
	p.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPosts) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	m.mu.Lock()
	p, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	cp := *p
	m.mu.Unlock()
	cp.Likes, cp.Dislikes, _ = m.Reactions(ctx, id)
	return &cp, nil
}

func (m *memPosts) List(_ context.Context, f repository.PostFilter) ([]*entity.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Post{}
	for _, p := range m.byID {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.AuthorID != "" && p.UserID != f.AuthorID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memPosts) Update(_ context.Context, p *entity.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, ok := m.byID[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *p
	cp.CreatedAt = ex.CreatedAt
	cp.UpdatedAt = time.Now()
	m.byID[p.ID] = &cp
	p.UpdatedAt = cp.UpdatedAt
	return nil
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	for k := range m.reactions {
		if k.post == id {
			delete(m.reactions, k)
		}
	}
	return nil
}

func (m *memPosts) IncrementViews(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Views++
	return p.Views, nil
}

func (m *memPosts) GetReaction(_ context.Context, postID, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reactions[reactionKey{postID, userID}], nil
}

func (m *memPosts) SetReaction(_ context.Context, postID, userID string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reactions[reactionKey{postID, userID}] = value
	return nil
}

func (m *memPosts) ClearReaction(_ context.Context, postID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reactions, reactionKey{postID, userID})
	return nil
}

func (m *memPosts) Reactions(_ context.Context, postID string) ([]string, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	likes, dislikes := []string{}, []string{}
	for k, v := range m.reactions {
		if k.post != postID {
			continue
		}
		if v == repository.ReactionLike {
			likes = append(likes, k.user)
		} else {
			dislikes = append(dislikes, k.user)
		}
	}
	sort.Strings(likes)
	sort.Strings(dislikes)
	return likes, dislikes, nil
}

type memComments struct {
	mu     sync.Mutex
	byPost map[string][]*entity.Comment
	seq    int
}

func newMemComments() *memComments {
	return &memComments{byPost: map[string][]*entity.Comment{}}
}

func (m *memComments) Create(_ context.Context, c *entity.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	c.ID = fmt.Sprintf("comment-%d", m.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.byPost[c.PostID] = append(m.byPost[c.PostID], &cp)
	return nil
}

func (m *memComments) ListByPost(_ context.Context, postID string) ([]*entity.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.byPost[postID]
	out := make([]*entity.Comment, 0, len(list))
	// newest first
	for i := len(list) - 1; i >= 0; i-- {
		cp := *list[i]
		out = append(out, &cp)
	}
	return out, nil
}

var (
	_ repository.UserRepository    = (*memUsers)(nil)
	_ repository.FollowRepository  = (*memFollows)(nil)
	_ repository.PostRepository    = (*memPosts)(nil)
	_ repository.CommentRepository = (*memComments)(nil)
)
