package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompthub/internal/config"
	"prompthub/internal/models"
	"prompthub/internal/repository"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server backed by an in-memory sqlite database with
// all routes registered. The Prometheus middleware is deliberately left out
// so parallel tests do not fight over collector registration.
func newTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Prompt{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPrompt{},
		&models.Follow{},
	), "migrate sqlite")

	userRepo := repository.NewUserRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config: &config.Config{
			JWTSecret: "test-secret-key-for-handler-tests",
			Env:       "test",
		},
		db:          db,
		userRepo:    userRepo,
		promptRepo:  promptRepo,
		commentRepo: commentRepo,
	}
	s.promptService = service.NewPromptService(promptRepo, userRepo)
	s.commentService = service.NewCommentService(commentRepo, promptRepo)
	s.userService = service.NewUserService(userRepo, promptRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return app, s, db
}

// doJSON performs a request with an optional JSON body and auth token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test")
	return resp
}

// decodeBody unmarshals a response body into out.
func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

// userIDFor looks up a user's ID by username directly in the database.
func userIDFor(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	return user.ID
}

// createPrompt shares a prompt through the API and returns its decoded document.
func createPrompt(t *testing.T, app *fiber.App, token, title string) models.Prompt {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/prompts", token, fiber.Map{
		"title":    title,
		"content":  "Translate {{text}} into plain English.",
		"category": string(models.CategoryBusiness),
		"purpose":  string(models.PurposeWriting),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var prompt models.Prompt
	decodeBody(t, resp, &prompt)
	require.NotZero(t, prompt.ID)
	return prompt
}

func promptPath(format string, args ...any) string {
	return fmt.Sprintf("/api/prompts"+format, args...)
}
