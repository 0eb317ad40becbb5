package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-users-backend/internal/domain"
	"go-users-backend/internal/service"
)

type memRepo struct {
	users  []domain.User
	nextID uint
}

func (r *memRepo) Create(_ context.Context, u *domain.User) error {
	for _, e := range r.users {
		if e.Username == u.Username {
			return domain.ErrDuplicateUser
		}
	}
	if r.nextID == 0 {
		r.nextID = 1
	}
	u.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *u)
	return nil
}

func (r *memRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

type memCache struct{ vals map[string][]byte }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.vals[key]
	return b, ok, nil
}

func (c *memCache) SetWithTTL(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.vals[key] = val
	return nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &memRepo{}
	accounts := service.NewAccountService(repo)
	listings := service.NewListingService(repo, &memCache{vals: map[string][]byte{}}, 30*time.Second, zap.NewNop())
	h := NewUserHandler(accounts, listings, zap.NewNop())

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/users", h.ListUsers)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserEndpoints(t *testing.T) {
	t.Run("register then login then list", func(t *testing.T) {
		r := newTestEngine(t)

		w := do(r, http.MethodPost, "/register", `{"username":"alice","password":"secret1"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"registered"}`, w.Body.String())

		w = do(r, http.MethodPost, "/register", `{"username":"alice","password":"other"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"user already exists"}`, w.Body.String())

		w = do(r, http.MethodPost, "/login", `{"username":"alice","password":"secret1"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"welcome, alice"}`, w.Body.String())

		w = do(r, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"invalid credentials"}`, w.Body.String())

		w = do(r, http.MethodGet, "/users", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":1,"username":"alice"}]`, w.Body.String())
	})

	t.Run("login for unknown user is the same 401", func(t *testing.T) {
		r := newTestEngine(t)
		w := do(r, http.MethodPost, "/login", `{"username":"ghost","password":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"invalid credentials"}`, w.Body.String())
	})

	t.Run("malformed bodies are rejected", func(t *testing.T) {
		r := newTestEngine(t)
		for _, body := range []string{``, `{}`, `{"username":"alice"}`, `{"password":"x"}`, `not json`} {
			w := do(r, http.MethodPost, "/register", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %q", body)
		}
	})

	t.Run("empty store lists an empty array", func(t *testing.T) {
		r := newTestEngine(t)
		w := do(r, http.MethodGet, "/users", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("listing never exposes passwords", func(t *testing.T) {
		r := newTestEngine(t)
		do(r, http.MethodPost, "/register", `{"username":"alice","password":"supersecret"}`)

		w := do(r, http.MethodGet, "/users", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "supersecret")
		assert.NotContains(t, w.Body.String(), "password")
	})
}
