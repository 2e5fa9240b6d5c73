package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rolodex/internal/models"
	"rolodex/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterFields() map[string]string {
	return map[string]string{
		"username":   "john1",
		"email":      "john@example.com",
		"password":   "Password1",
		"first_name": "John",
		"last_name":  "Doe",
		"contact":    "9876543210",
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/register", s.Register)

	t.Run("Success without image", func(t *testing.T) {
		body, contentType := multipartForm(t, validRegisterFields(), "", "", nil)
		req := httptest.NewRequest(http.MethodPost, "/register", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)

		var out struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &out)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "john1", out.User.Username)
		assert.True(t, out.User.IsActive)
		assert.Empty(t, out.User.ImagePath)
	})

	t.Run("Success with image", func(t *testing.T) {
		fields := validRegisterFields()
		fields["username"] = "jane1"
		fields["email"] = "jane@example.com"
		fields["contact"] = "9876543211"
		body, contentType := multipartForm(t, fields, "image", "face.png", testutil.TinyPNG(t, 120, 90))
		req := httptest.NewRequest(http.MethodPost, "/register", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)

		var out struct {
			User models.User `json:"user"`
		}
		decodeBody(t, resp, &out)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, strings.HasPrefix(out.User.ImagePath, "account_profiles/"))
		assert.True(t, strings.HasSuffix(out.User.ImagePath, ".jpg"))
	})

	t.Run("Validation failures are accumulated", func(t *testing.T) {
		fields := map[string]string{
			"username":   "",
			"email":      "not-an-email",
			"password":   "short",
			"first_name": "John123",
			"last_name":  "",
			"contact":    "12",
		}
		body, contentType := multipartForm(t, fields, "", "", nil)
		req := httptest.NewRequest(http.MethodPost, "/register", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)

		var out models.ErrorResponse
		decodeBody(t, resp, &out)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", out.Code)
		for _, key := range []string{"username", "email", "password", "first_name", "last_name", "contact"} {
			assert.Contains(t, out.Fields, key, "expected a failure for %s", key)
		}
	})

	t.Run("Duplicate username", func(t *testing.T) {
		body, contentType := multipartForm(t, validRegisterFields(), "", "", nil)
		req := httptest.NewRequest(http.MethodPost, "/register", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)

		var out models.ErrorResponse
		decodeBody(t, resp, &out)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, out.Fields["username"], "A user with that username already exists.")
	})

	t.Run("Undecodable image", func(t *testing.T) {
		fields := validRegisterFields()
		fields["username"] = "badimage"
		fields["email"] = "badimage@example.com"
		fields["contact"] = "9876543212"
		body, contentType := multipartForm(t, fields, "image", "face.jpg", []byte("junk"))
		req := httptest.NewRequest(http.MethodPost, "/register", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/login", s.Login)

	registerTestUser(t, s, "loginuser")

	login := func(t *testing.T, payload string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("By username", func(t *testing.T) {
		resp := login(t, `{"login":"loginuser","password":"Password1"}`)
		var out struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &out)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("By email", func(t *testing.T) {
		resp := login(t, `{"login":"loginuser@example.com","password":"Password1"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Wrong password", func(t *testing.T) {
		resp := login(t, `{"login":"loginuser","password":"WrongPassword1"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown account", func(t *testing.T) {
		resp := login(t, `{"login":"ghost","password":"Password1"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefresh(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/refresh", s.Refresh)

	_, token := registerTestUser(t, s, "refreshuser")

	t.Run("Valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var out struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &out)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("Missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout_WithoutRedis(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/logout", s.Logout)

	_, token := registerTestUser(t, s, "logoutuser")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
