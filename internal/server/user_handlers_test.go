package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuthorPosts_OnlyThatAuthor(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.createUser(t, "ada")
	bob := ts.createUser(t, "bob")
	now := time.Now()
	ts.createPost(t, ada.ID, "ada writes", now.Add(-2*time.Minute))
	ts.createPost(t, bob.ID, "bob writes", now.Add(-time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/users/ada/posts", nil)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Username string           `json:"username"`
		Feed     service.FeedPage `json:"feed"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "ada", body.Username)
	require.Len(t, body.Feed.Posts, 1)
	assert.Equal(t, "ada writes", body.Feed.Posts[0].Text)
}

func TestGetAuthorPosts_UnknownAuthor(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/nobody/posts", nil)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMyProfile_Bio(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.createUser(t, "ada")
	originalHash := ada.Password

	// reading the profile first puts the user in the cache; the cached copy
	// has no password hash, and the update that follows must not write one
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	ts.authed(t, req, ada)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = jsonRequest(t, http.MethodPut, "/api/users/me", map[string]any{
		"bio": "writes about compilers",
	})
	ts.authed(t, req, ada)

	resp, err = ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored struct {
		Bio      string
		Password string
	}
	require.NoError(t, ts.db.Table("users").Select("bio, password").Where("id = ?", ada.ID).Scan(&stored).Error)
	assert.Equal(t, "writes about compilers", stored.Bio)
	assert.Equal(t, originalHash, stored.Password, "updating the bio must not touch the credential")
}

func TestFollowFeedAliasRoute(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.createUser(t, "reader")
	author := ts.createUser(t, "author")
	ts.createPost(t, author.ID, "followed words", time.Now())

	req := httptest.NewRequest(http.MethodPost, "/api/users/author/follow", nil)
	ts.authed(t, req, reader)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	ts.authed(t, req, reader)
	resp, err = ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed service.FeedPage
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &feed))
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "followed words", feed.Posts[0].Text)
}
