package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/dansdevelopments/catalog-admin/internal/handlers"
	"github.com/dansdevelopments/catalog-admin/internal/store"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAdmin(t *testing.T) (*handlers.AdminHandler, *store.Store) {
	t.Helper()

	s, err := store.NewStore(":memory:")
	require.NoError(t, err)
	s.DB.SetMaxOpenConns(1)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.DB.Close() })

	templates := handlers.NewTemplateCache()
	require.NoError(t, templates.Load("../../templates"))

	h := &handlers.AdminHandler{
		Store:        s,
		SessionStore: sessions.NewCookieStore([]byte("test-session-key")),
		Templates:    templates,
	}
	return h, s
}

func seedUser(t *testing.T, s *store.Store, username, password string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(username, string(hashed)))
}

func TestLoginGet(t *testing.T) {
	h, _ := setupAdmin(t)

	rr := getRequest(h.LoginGet, "/login", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Log in")
}

func TestLoginPost(t *testing.T) {
	h, s := setupAdmin(t)
	seedUser(t, s, "admin", "hunter2")

	form := url.Values{"username": {"admin"}, "password": {"hunter2"}}
	rr := postForm(h.LoginPost, "/login", form, "")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products", rr.Header().Get("Location"))
}

func TestLoginPostWrongPassword(t *testing.T) {
	h, s := setupAdmin(t)
	seedUser(t, s, "admin", "hunter2")

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	rr := postForm(h.LoginPost, "/login", form, "")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestLoginPostUnknownUser(t *testing.T) {
	h, _ := setupAdmin(t)

	form := url.Values{"username": {"ghost"}, "password": {"boo"}}
	rr := postForm(h.LoginPost, "/login", form, "")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestAuthMiddlewareRedirectsAnonymous(t *testing.T) {
	h, _ := setupAdmin(t)

	called := false
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := getRequest(protected, "/products", "")

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}
