package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
)

// SocialService owns the social graph: follow/unfollow, like/dislike and
// comments. Every operation here is a set toggle or append; memberships
// de-duplicate by construction in the store.
type SocialService struct {
	Users    repository.UserRepository
	Follows  repository.FollowRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Logger   *logrus.Logger
}

func NewSocialService(users repository.UserRepository, follows repository.FollowRepository,
	posts repository.PostRepository, comments repository.CommentRepository, logger *logrus.Logger) *SocialService {
	return &SocialService{Users: users, Follows: follows, Posts: posts, Comments: comments, Logger: logger}
}

// FollowState reports the actor's relationship to the target after a toggle.
type FollowState struct {
	Following bool `json:"following"`
}

// ToggleFollow flips the actor->target edge. Self-follow is rejected. The edge
// is a single stored row, so both membership sets move together; concurrent
// toggles from the same actor resolve last-write-wins.
func (s *SocialService) ToggleFollow(ctx context.Context, actorID, targetID string) (FollowState, error) {
	if actorID == targetID {
		return FollowState{}, fmt.Errorf("%w: cannot follow yourself", ErrInvalidOperation)
	}
	if _, err := s.Users.GetByID(ctx, targetID); err != nil {
		return FollowState{}, mapRepoErr(err)
	}

	following, err := s.Follows.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return FollowState{}, err
	}
	if following {
		if err := s.Follows.Unfollow(ctx, actorID, targetID); err != nil {
			return FollowState{}, mapRepoErr(err)
		}
		return FollowState{Following: false}, nil
	}
	if err := s.Follows.Follow(ctx, actorID, targetID); err != nil {
		return FollowState{}, mapRepoErr(err)
	}
	return FollowState{Following: true}, nil
}

// ReactionResult is the full membership after a like/dislike toggle, plus the
// actor's resulting state for the toggled reaction.
type ReactionResult struct {
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`
	Active   bool     `json:"active"`
}

// ToggleLike flips the actor's like on a post. Liking while a dislike is
// present replaces it: the sets stay disjoint because both reactions share
// one stored row per (post, account).
func (s *SocialService) ToggleLike(ctx context.Context, actorID, postID string) (ReactionResult, error) {
	return s.toggleReaction(ctx, actorID, postID, repository.ReactionLike)
}

// ToggleDislike is the mirror of ToggleLike.
func (s *SocialService) ToggleDislike(ctx context.Context, actorID, postID string) (ReactionResult, error) {
	return s.toggleReaction(ctx, actorID, postID, repository.ReactionDislike)
}

func (s *SocialService) toggleReaction(ctx context.Context, actorID, postID string, value int) (ReactionResult, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return ReactionResult{}, mapRepoErr(err)
	}

	current, err := s.Posts.GetReaction(ctx, postID, actorID)
	if err != nil {
		return ReactionResult{}, err
	}

	active := current != value
	if active {
		err = s.Posts.SetReaction(ctx, postID, actorID, value)
	} else {
		err = s.Posts.ClearReaction(ctx, postID, actorID)
	}
	if err != nil {
		return ReactionResult{}, mapRepoErr(err)
	}

	likes, dislikes, err := s.Posts.Reactions(ctx, postID)
	if err != nil {
		return ReactionResult{}, err
	}
	return ReactionResult{Likes: likes, Dislikes: dislikes, Active: active}, nil
}

// AddComment appends a comment to an existing post. Content must be non-empty
// after trimming.
func (s *SocialService) AddComment(ctx context.Context, actorID, postID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return nil, mapRepoErr(err)
	}

	c := &entity.Comment{PostID: postID, UserID: actorID, Content: content}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, mapRepoErr(err)
	}
	if u, err := s.Users.GetByID(ctx, actorID); err == nil {
		c.Author = u.Ref()
	}
	return c, nil
}

// Profile is the public view of an account: identity without the secret,
// social edges, and up to ten most recent published posts.
type Profile struct {
	User      entity.UserRef   `json:"user"`
	Email     string           `json:"email"`
	Followers []entity.UserRef `json:"followers"`
	Following []entity.UserRef `json:"following"`
	Posts     []*entity.Post   `json:"posts"`
}

func (s *SocialService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	followers, err := s.Follows.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.Follows.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.Posts.List(ctx, repository.PostFilter{
		AuthorID: userID,
		Status:   entity.StatusPublished,
		Limit:    10,
	})
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:      u.Ref(),
		Email:     u.Email,
		Followers: followers,
		Following: following,
		Posts:     posts,
	}, nil
}

// FollowerList returns one side of a user's social edges.
func (s *SocialService) FollowerList(ctx context.Context, userID string, following bool) ([]entity.UserRef, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, mapRepoErr(err)
	}
	if following {
		return s.Follows.Following(ctx, userID)
	}
	return s.Follows.Followers(ctx, userID)
}
