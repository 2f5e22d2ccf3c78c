package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/blogicum/api-go/models"
)

func registerBody(username string) map[string]interface{} {
	return map[string]interface{}{
		"username":   username,
		"email":      username + "@example.com",
		"password":   "secret123",
		"first_name": "Test",
		"last_name":  "User",
	}
}

func createPasswordUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashedStr := string(hashed)
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: &hashedStr,
		Provider: "email",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestRegister(t *testing.T) {
	r, db := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", "", registerBody("newcomer"))
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "newcomer", user["username"])
	assert.Equal(t, "newcomer@example.com", user["email"])

	var stored models.User
	require.NoError(t, db.First(&stored, "username = ?", "newcomer").Error)
	require.NotNil(t, stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.Password), []byte("secret123")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, db := newTestApp(t)
	createUser(t, db, "taken")

	w := doJSON(t, r, http.MethodPost, "/api/register", "", registerBody("taken"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterUsernameValidation(t *testing.T) {
	r, _ := newTestApp(t)

	for _, username := range []string{"ab", "1starts_with_digit", "has space", "admin"} {
		body := registerBody("fallback")
		body["username"] = username
		body["email"] = "unique-" + strings.ReplaceAll(username, " ", "") + "@example.com"

		w := doJSON(t, r, http.MethodPost, "/api/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "username %q should be rejected", username)

		errs := decodeBody(t, w)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "username")
	}
}

func TestRegisterShortPassword(t *testing.T) {
	r, _ := newTestApp(t)

	body := registerBody("shortpw")
	body["password"] = "abc"

	w := doJSON(t, r, http.MethodPost, "/api/register", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeBody(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "password")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r, db := newTestApp(t)
	createPasswordUser(t, db, "alice", "wonderland")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email": "alice@example.com", "password": "wonderland",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Bearer", body["token_type"])
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, body["access_token"], cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var count int64
	db.Model(&models.RefreshToken{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLoginCookieAuthenticatesRequests(t *testing.T) {
	r, db := newTestApp(t)
	user := createPasswordUser(t, db, "alice", "wonderland")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email": "alice@example.com", "password": "wonderland",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)

	// The cookie alone, no Authorization header, should open a protected route
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(`{"first_name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assertRedirect(t, rec, "/api/users/alice")

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Alice", stored.FirstName)
}

func TestLoginWrongPassword(t *testing.T) {
	r, db := newTestApp(t)
	createPasswordUser(t, db, "alice", "wonderland")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email": "alice@example.com", "password": "rabbit hole",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email": "ghost@example.com", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginPage(t *testing.T) {
	r, _ := newTestApp(t)

	w := doJSON(t, r, http.MethodGet, "/login", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "detail")
}

func TestRefreshTokenRotation(t *testing.T) {
	r, db := newTestApp(t)
	createPasswordUser(t, db, "alice", "wonderland")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email": "alice@example.com", "password": "wonderland",
	})
	require.Equal(t, http.StatusOK, w.Code)
	oldRefresh := decodeBody(t, w)["refresh_token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/refresh-token", "", map[string]interface{}{
		"refresh_token": oldRefresh,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	newRefresh := decodeBody(t, w)["refresh_token"].(string)
	assert.NotEqual(t, oldRefresh, newRefresh)

	// The old token is spent
	w = doJSON(t, r, http.MethodPost, "/api/refresh-token", "", map[string]interface{}{
		"refresh_token": oldRefresh,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	r, db := newTestApp(t)
	createPasswordUser(t, db, "alice", "wonderland")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]interface{}{
		"email": "alice@example.com", "password": "wonderland",
	})
	require.Equal(t, http.StatusOK, w.Code)
	refresh := decodeBody(t, w)["refresh_token"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/logout", "", map[string]interface{}{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.RefreshToken{}).Count(&count)
	assert.Zero(t, count)

	// Logout clears the session cookie
	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	r, _ := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/google", "", map[string]interface{}{
		"id_token": "irrelevant",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "blogicum_session" {
			return cookie
		}
	}
	return nil
}
