package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
	"inkwell/pkg/helpers"
	"inkwell/pkg/mailer"
)

// AuthService owns account credentials: registration, login and the password
// mutation site. It is the only place where the password hash is written.
type AuthService struct {
	Users        repository.UserRepository
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	AppName      string
	MailEnabled  bool
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates an account with a bcrypt-hashed secret and issues a session
// token. Username/email collisions map to ErrDuplicateIdentity; no account is
// created in that case.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, time.Time, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u := &entity.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", time.Time{}, ErrDuplicateIdentity
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	// Best effort: neither search indexing nor the welcome email may fail the
	// registration.
	s.indexUser(ctx, u)
	s.enqueueWelcome(ctx, u)

	return u, token, exp, nil
}

// Login verifies credentials and issues a token. Unknown usernames burn a
// bcrypt comparison so response timing does not reveal account existence, and
// every failure is the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		helpers.BurnPasswordCheck(password)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// ChangePassword is the single mutation site for the secret; the rehash
// happens here and nowhere else, so profile edits can never touch the hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrNotFound
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, hash)
}

// SearchUsers queries Elasticsearch when configured, falling back to the SQL
// repository otherwise.
func (s *AuthService) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserRef, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.ES == nil || s.ESUsersIndex == "" {
		return s.Users.Search(ctx, q, size)
	}

	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.UserRef, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		var src struct {
			Username  string `json:"username"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := json.Unmarshal(h.Source, &src); err != nil {
			continue
		}
		out = append(out, entity.UserRef{ID: h.ID, Username: src.Username, FirstName: src.FirstName, LastName: src.LastName})
	}
	return out, nil
}

func (s *AuthService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data: map[string]any{
			"AppName":   s.AppName,
			"Username":  u.Username,
			"FirstName": u.FirstName,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
