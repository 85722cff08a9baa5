package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/lib/pq"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *auth.TokenService
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON", "Request body must be valid JSON")
		return
	}

	if fields := ValidateRegistration(input.Username, input.Password); len(fields) > 0 {
		JSONValidationError(w, "Registration failed. Fix the highlighted fields.", fields)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		slog.Error("register: hash password", "error", err)
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Something went wrong. Please try again.")
		return
	}

	user, err := h.Users.Create(r.Context(), input.Username, hash)
	if err != nil {
		// 23505 is Postgres unique_violation: the username is taken.
		if e, ok := err.(*pq.Error); ok && e.Code == "23505" {
			JSONError(w, http.StatusBadRequest, "Username already taken",
				"Registration failed. Please choose a different username.")
			return
		}
		slog.Error("register: create user", "error", err)
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Something went wrong. Please try again.")
		return
	}

	JSONData(w, http.StatusCreated, "User registered successfully.",
		map[string]string{"username": user.Username})
}

// ==========================
// Login (issues the access/refresh token pair)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON", "Request body must be valid JSON")
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("login: user lookup", "error", err)
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Something went wrong. Please try again.")
		return
	}
	// Unknown user and wrong password produce the same response.
	if err == sql.ErrNoRows || !auth.CheckPassword(input.Password, user.PasswordHash) {
		JSONError(w, http.StatusBadRequest, "Invalid username or password",
			"Login failed. Please check your username and password and try again.")
		return
	}

	now := time.Now()
	accessToken, err := h.Tokens.IssueAccess(user.Username, now)
	if err != nil {
		slog.Error("login: issue access token", "error", err)
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Something went wrong. Please try again.")
		return
	}
	refreshToken, err := h.Tokens.IssueRefresh(user.Username, now)
	if err != nil {
		slog.Error("login: issue refresh token", "error", err)
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Something went wrong. Please try again.")
		return
	}

	JSONData(w, http.StatusOK, "Login successful.", map[string]string{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// ==========================
// Refresh (mints a new access token from a refresh token)
// ==========================
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON", "Request body must be valid JSON")
		return
	}

	subject, err := h.Tokens.VerifyRefresh(input.RefreshToken)
	if err != nil {
		JSONError(w, http.StatusUnauthorized, "Invalid refresh token",
			"Token verification failed. Please log in again.")
		return
	}

	// The subject must still exist; a deleted user's refresh token is dead.
	user, err := h.Users.GetByUsername(r.Context(), subject)
	if err == sql.ErrNoRows {
		JSONError(w, http.StatusUnauthorized, "Invalid refresh token",
			"Token verification failed. Please log in again.")
		return
	}
	if err != nil {
		slog.Error("refresh: user lookup", "error", err)
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Something went wrong. Please try again.")
		return
	}

	accessToken, err := h.Tokens.IssueAccess(user.Username, time.Now())
	if err != nil {
		slog.Error("refresh: issue access token", "error", err)
		JSONError(w, http.StatusInternalServerError, ErrMessageInternal, "Something went wrong. Please try again.")
		return
	}

	JSONData(w, http.StatusOK, "New access token generated successfully.",
		map[string]string{"access_token": accessToken})
}
