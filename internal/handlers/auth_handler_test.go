package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shop-api/internal/models"
)

func TestRegisterStripsPassword(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/users/register",
		[]byte(`{"email":"jane@example.com","password":"secret123"}`), "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "secret123")
	assert.NotContains(t, w.Body.String(), "password")

	var user models.User
	require.NoError(t, e.db.First(&user, "email = ?", "jane@example.com").Error)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newTestEnv(t)

	body := []byte(`{"email":"jane@example.com","password":"secret123"}`)

	w := e.do(t, http.MethodPost, "/users/register", body, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/users/register", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	e.db.Model(&models.User{}).Where("email = ?", "jane@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/users/register",
		[]byte(`{"email":"Jane@Example.COM","password":"secret123"}`), "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/users/register",
		[]byte(`{"email":"jane@example.com","password":"secret123"}`), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPasswordMatchesUnknownEmail(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/users/register",
		[]byte(`{"email":"jane@example.com","password":"secret123"}`), "")
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := e.do(t, http.MethodPost, "/users/signin",
		[]byte(`{"email":"jane@example.com","password":"wrong-pass"}`), "")
	unknownEmail := e.do(t, http.MethodPost, "/users/signin",
		[]byte(`{"email":"nobody@example.com","password":"secret123"}`), "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)

	// Neither answer may reveal whether the email exists.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginIssuesUsableToken(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/users/register",
		[]byte(`{"email":"jane@example.com","password":"secret123"}`), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/users/signin",
		[]byte(`{"email":"jane@example.com","password":"secret123"}`), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	me := e.do(t, http.MethodGet, "/users/me", nil, resp.Token)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "jane@example.com")
	assert.NotContains(t, me.Body.String(), "password")
}

func TestMeUnknownUser(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/users/me", nil, e.token(t, 999))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsersRequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodGet, "/users", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsersStripsPasswords(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/users/register",
		[]byte(`{"email":"jane@example.com","password":"secret123"}`), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodGet, "/users", nil, e.token(t, 1))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")
	assert.NotContains(t, w.Body.String(), "password")
}
