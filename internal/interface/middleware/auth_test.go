package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/pkg/helpers"
)

func newAuthRouter(t *testing.T, jwt *helpers.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	r.GET("/optional", OptionalAuth(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func doRequest(r *gin.Engine, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelopeMessage(t *testing.T, body []byte) string {
	t.Helper()
	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Message
}

func TestAuthMissingToken(t *testing.T) {
	r := newAuthRouter(t, helpers.NewJWTManager("secret", time.Hour))

	w := doRequest(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token, authorization denied", envelopeMessage(t, w.Body.Bytes()))
}

func TestAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(t, helpers.NewJWTManager("secret", time.Hour))

	w := doRequest(r, func(req *http.Request) {
		req.Header.Set(HeaderToken, "garbage")
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is not valid", envelopeMessage(t, w.Body.Bytes()))

	// An expired token gets the same message.
	expired, _, err := helpers.NewJWTManager("secret", -time.Minute).Issue("u1")
	require.NoError(t, err)
	w = doRequest(r, func(req *http.Request) {
		req.Header.Set(HeaderToken, expired)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is not valid", envelopeMessage(t, w.Body.Bytes()))
}

func TestAuthAcceptsCookie(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt)
	token, _, err := jwt.Issue("user-1")
	require.NoError(t, err)

	w := doRequest(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: token})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestAuthAcceptsHeaderFallback(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt)
	token, _, err := jwt.Issue("user-2")
	require.NoError(t, err)

	w := doRequest(r, func(req *http.Request) {
		req.Header.Set(HeaderToken, token)
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-2", w.Body.String())
}

func TestAuthCookieWinsOverHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt)
	cookieToken, _, err := jwt.Issue("cookie-user")
	require.NoError(t, err)
	headerToken, _, err := jwt.Issue("header-user")
	require.NoError(t, err)

	w := doRequest(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: cookieToken})
		req.Header.Set(HeaderToken, headerToken)
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-user", w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt)
	token, _, err := jwt.Issue("user-3")
	require.NoError(t, err)

	// Anonymous requests pass through with no identity.
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	// Invalid tokens are ignored rather than rejected.
	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set(HeaderToken, "garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	// Valid tokens resolve the identity.
	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set(HeaderToken, token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-3", w.Body.String())
}
