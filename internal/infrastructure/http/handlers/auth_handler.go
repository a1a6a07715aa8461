package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/chima-angwe/location-stamper-backend/internal/application/auth"
	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
	domerrors "github.com/chima-angwe/location-stamper-backend/internal/domain/errors"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http/middleware"
)

// AuthHandler handles /api/auth/*.
type AuthHandler struct {
	register    *auth.Register
	login       *auth.Login
	currentUser *auth.CurrentUser
	emitter     ports.WebhookEmitter
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, currentUser *auth.CurrentUser, emitter ports.WebhookEmitter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:    register,
		login:       login,
		currentUser: currentUser,
		emitter:     emitter,
		validate:    validator.New(),
		log:         log,
	}
}

// userPayload is the JSON shape for a user in auth responses; the password
// digest never leaves the server.
type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserPayload(u *domain.User) userPayload {
	return userPayload{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,min=2,max=50"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=6,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Name:     body.Name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		if errors.Is(err, domerrors.ErrEmailTaken) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusBadRequest, "invalid email address")
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully",
		"token":   result.Token,
		"user":    toUserPayload(result.User),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{Email: email, Password: password})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   result.Token,
		"user":    toUserPayload(result.User),
	})
}

// Me returns the current user's profile. Requires AuthValidator middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.currentUser.Execute(r.Context(), identity)
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("fetch current user failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": toUserPayload(user)})
}

// Logout acknowledges a client-side token discard. There is no server-side
// session state to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	AuditEmit(h.log, r, h.emitter, "user.logout", identity.UserID, true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Logout successful"})
}
