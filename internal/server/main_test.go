package server

import (
	"net/http"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-that-is-long-enough-for-jwt"

// testServer bundles everything a handler test needs.
type testServer struct {
	app *fiber.App
	srv *Server
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(client)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		JWTSecret:            testJWTSecret,
		IndexCacheTTLSeconds: 20,
		Env:                  "test",
	}
	srv, err := NewServerWithDeps(cfg, db, client)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testServer{app: app, srv: srv, db: db, mr: mr}
}

func (ts *testServer) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecretPass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, ts.db.Create(user).Error)
	return user
}

func (ts *testServer) createPost(t *testing.T, userID uint, text string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, UserID: userID, CreatedAt: createdAt}
	require.NoError(t, ts.db.Create(post).Error)
	return post
}

// authed attaches a bearer token for the given user to the request.
func (ts *testServer) authed(t *testing.T, req *http.Request, user *models.User) *http.Request {
	t.Helper()
	token, err := ts.srv.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
