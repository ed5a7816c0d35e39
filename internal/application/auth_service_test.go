package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/pkg/helpers"
)

func newAuthService(t *testing.T) (*AuthService, *memUsers) {
	t.Helper()
	users := newMemUsers()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	logger := logrus.New()
	logger.SetOutput(testWriter{t})
	return NewAuthService(users, jwt, logger), users
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func registerTestUser(t *testing.T, svc *AuthService, username string) string {
	t.Helper()
	u, _, _, err := svc.Register(context.Background(), RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "hunter2hunter2",
	})
	require.NoError(t, err)
	return u.ID
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	svc, _ := newAuthService(t)

	u, token, exp, err := svc.Register(context.Background(), RegisterInput{
		Username:  "alice",
		Email:     "Alice@Example.com",
		FirstName: "Alice",
		LastName:  "Author",
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email, "email is normalized to lower case")
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	// Stored secret is a hash, never the raw password.
	assert.NotEqual(t, "correct-horse", u.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "correct-horse"))
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	svc, users := newAuthService(t)
	registerTestUser(t, svc, "bob")

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Username:  "bob",
		Email:     "other@example.com",
		FirstName: "Bob",
		LastName:  "Clone",
		Password:  "whatever-pass",
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	// No second account was created.
	refs, err := users.Search(context.Background(), "bob", 10)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	id := registerTestUser(t, svc, "carol")

	u, token, _, err := svc.Login(context.Background(), "carol", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.NotEmpty(t, token)

	// Wrong password and unknown username fail identically.
	_, _, _, err = svc.Login(context.Background(), "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = svc.Login(context.Background(), "nobody", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	id := registerTestUser(t, svc, "dave")

	err := svc.ChangePassword(context.Background(), id, "wrong-current", "new-password-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(context.Background(), id, "hunter2hunter2", "new-password-1"))

	_, _, _, err = svc.Login(context.Background(), "dave", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = svc.Login(context.Background(), "dave", "new-password-1")
	assert.NoError(t, err)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.GetProfile(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsersFallsBackWithoutES(t *testing.T) {
	svc, _ := newAuthService(t)
	registerTestUser(t, svc, "erin")
	registerTestUser(t, svc, "erika")
	registerTestUser(t, svc, "frank")

	refs, err := svc.SearchUsers(context.Background(), "eri", 10)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "erika", refs[0].Username)
	assert.Equal(t, "erin", refs[1].Username)
}
