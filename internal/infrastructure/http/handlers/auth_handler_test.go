package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chima-angwe/location-stamper-backend/internal/application/auth"
	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http/middleware"
)

func newAuthHandler(repo *fakeUserRepo) *AuthHandler {
	register := auth.NewRegister(repo, fakeHasher{}, fakeIssuer{})
	login := auth.NewLogin(repo, fakeHasher{}, fakeIssuer{})
	current := auth.NewCurrentUser(repo)
	return NewAuthHandler(register, login, current, nil, zerolog.Nop())
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestAuthHandler_Register(t *testing.T) {
	handler := newAuthHandler(newFakeUserRepo())

	rec, body := doJSON(t, handler.Register, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Account created successfully", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, "Ada", user["name"])
	assert.NotContains(t, user, "passwordHash")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler := newAuthHandler(newFakeUserRepo())

	rec, _ := doJSON(t, handler.Register, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, handler.Register, http.MethodPost, "/api/auth/register",
		`{"name":"Imposter","email":"ada@example.com","password":"other12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	handler := newAuthHandler(newFakeUserRepo())

	tests := []struct {
		name string
		body string
	}{
		{"name too short", `{"name":"A","email":"a@example.com","password":"secret1"}`},
		{"bad email", `{"name":"Ada","email":"not-an-email","password":"secret1"}`},
		{"password too short", `{"name":"Ada","email":"a@example.com","password":"short"}`},
		{"missing fields", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, handler.Register, http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["errors"])
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	repo := newFakeUserRepo()
	handler := newAuthHandler(repo)
	doJSON(t, handler.Register, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

	rec, body := doJSON(t, handler.Login, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestAuthHandler_Login_FailureDoesNotLeakField(t *testing.T) {
	repo := newFakeUserRepo()
	handler := newAuthHandler(repo)
	doJSON(t, handler.Register, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

	recUnknown, bodyUnknown := doJSON(t, handler.Login, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"secret1"}`)
	recWrongPw, bodyWrongPw := doJSON(t, handler.Login, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"wrongpw"}`)

	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, recWrongPw.Code)
	// The two failure modes must be indistinguishable to the caller.
	assert.Equal(t, bodyUnknown["error"], bodyWrongPw["error"])
}

func TestAuthHandler_Me(t *testing.T) {
	repo := newFakeUserRepo()
	handler := newAuthHandler(repo)
	_, registered := doJSON(t, handler.Register, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret1"}`)
	userID := registered["user"].(map[string]interface{})["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), ports.Identity{UserID: userID, Email: "ada@example.com"}))
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ada@example.com", body["user"].(map[string]interface{})["email"])
}

func TestAuthHandler_Me_UnknownUser(t *testing.T) {
	handler := newAuthHandler(newFakeUserRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), ports.Identity{
		UserID: "2f6f54f3-94a7-4b72-9b0a-6f0b7f8a2c11",
	}))
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
