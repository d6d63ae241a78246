package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rafsal3/VideoGen-v1/internal/auth/domain"
)

type fakeVerifier struct {
	users map[string]*domain.User
}

func (f *fakeVerifier) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, domain.ErrInvalidToken
}

func setupRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireUser(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": Username(c)})
	})
	r.GET("/open", OptionalUser(verifier), func(c *gin.Context) {
		if user := CurrentUser(c); user != nil {
			c.JSON(http.StatusOK, gin.H{"user": user.Username})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": nil})
	})
	return r
}

func TestRequireUserRejectsMissingToken(t *testing.T) {
	r := setupRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserRejectsBadToken(t *testing.T) {
	r := setupRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserResolvesUser(t *testing.T) {
	verifier := &fakeVerifier{users: map[string]*domain.User{
		"good-token": {ID: "user-1", Username: "alice"},
	}}
	r := setupRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestOptionalUserAllowsAnonymous(t *testing.T) {
	r := setupRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalUserIgnoresBadToken(t *testing.T) {
	r := setupRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
