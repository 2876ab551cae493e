package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_IsIdempotent(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.createUser(t, "reader")
	ts.createUser(t, "author")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/author/follow", nil)
		ts.authed(t, req, reader)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var count int64
	require.NoError(t, ts.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollow_SelfRejected(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.createUser(t, "reader")

	req := httptest.NewRequest(http.MethodPost, "/api/users/reader/follow", nil)
	ts.authed(t, req, reader)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, ts.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollow_AnonymousRedirects(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUser(t, "author")

	req := httptest.NewRequest(http.MethodPost, "/api/users/author/follow", nil)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestUnfollow_NeverFollowedIsNoop(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.createUser(t, "reader")
	ts.createUser(t, "author")

	req := httptest.NewRequest(http.MethodDelete, "/api/users/author/follow", nil)
	ts.authed(t, req, reader)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFollowFeed_OnlyFollowedAuthors(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.createUser(t, "reader")
	followed := ts.createUser(t, "followed")
	other := ts.createUser(t, "other")

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts.createPost(t, followed.ID, "from followed", at)
	ts.createPost(t, other.ID, "from other", at.Add(time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/users/followed/follow", nil)
	ts.authed(t, req, reader)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	req = httptest.NewRequest(http.MethodGet, "/api/feed/follow", nil)
	ts.authed(t, req, reader)
	resp, err = ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed struct {
		Posts []struct {
			Text string `json:"text"`
		} `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "from followed", feed.Posts[0].Text)
}

func TestFollowFeed_EmptyWithoutSubscriptions(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.createUser(t, "reader")
	author := ts.createUser(t, "author")
	ts.createPost(t, author.ID, "unseen", time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/feed/follow", nil)
	ts.authed(t, req, reader)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed struct {
		Posts      []json.RawMessage `json:"posts"`
		TotalPages int               `json:"total_pages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	assert.Empty(t, feed.Posts)
	assert.Equal(t, 1, feed.TotalPages)
}

func TestProfile_ShowsFollowState(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.createUser(t, "reader")
	author := ts.createUser(t, "author")
	ts.createPost(t, author.ID, "a post", time.Now())

	req := httptest.NewRequest(http.MethodPost, "/api/users/author/follow", nil)
	ts.authed(t, req, reader)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	req = httptest.NewRequest(http.MethodGet, "/api/users/author", nil)
	ts.authed(t, req, reader)
	resp, err = ts.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Profile struct {
			Followers  int64 `json:"followers"`
			PostsCount int64 `json:"posts_count"`
		} `json:"profile"`
		Following bool `json:"following"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Following)
	assert.Equal(t, int64(1), payload.Profile.Followers)
	assert.Equal(t, int64(1), payload.Profile.PostsCount)
}
