package entity

import "time"

// Post status values. A post is created as a draft and may move freely between
// draft and published until it is deleted.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is the aggregate root for blog posts. UserID is set at creation and is
// immutable. Likes and Dislikes hold account ids and are disjoint.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Author    UserRef   `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	ImageURL  string    `json:"image_url,omitempty"`
	Status    string    `json:"status"`
	Views     int64     `json:"views"`
	Likes     []string  `json:"likes"`
	Dislikes  []string  `json:"dislikes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) IsOwnedBy(userID string) bool {
	return p.UserID == userID
}
