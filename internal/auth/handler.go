package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/resmedx/noticeboard/internal/models"
	"github.com/resmedx/noticeboard/internal/store"
)

const (
	// TokenCookie is the HTTP-only cookie mirroring the bearer token.
	TokenCookie = "token"
	// CookieTTL is the client-side lifetime of the cookie copy. The
	// token itself expires only if the issuer was given a ttl.
	CookieTTL = 24 * time.Hour

	bcryptCost = 10
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *JWT
}

func NewHandler(users UserStore, tokens *JWT) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success":false,"message":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, `{"success":false,"message":"name, email, and password are required"}`, http.StatusBadRequest)
		return
	}

	// Friendly pre-check; the unique index is what actually prevents
	// a duplicate slipping in between this read and the insert.
	if _, err := h.users.GetUserByEmail(r.Context(), req.Email); err == nil {
		http.Error(w, `{"success":false,"message":"User already exists"}`, http.StatusBadRequest)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"success":false,"message":"internal error"}`, http.StatusInternalServerError)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		http.Error(w, `{"success":false,"message":"internal error"}`, http.StatusInternalServerError)
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email, PasswordHash: string(hashed)}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			http.Error(w, `{"success":false,"message":"User already exists"}`, http.StatusBadRequest)
			return
		}
		log.Printf("create user: %v", err)
		http.Error(w, `{"success":false,"message":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"success":true,"message":"User registered successfully"}`))
}

// Login authenticates a user and issues a signed token. The same
// token goes into the body and the cookie; which of the two was wrong
// (email or password) is never revealed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"message":"Invalid email or password"}`, http.StatusUnauthorized)
			return
		}
		log.Printf("login lookup: %v", err)
		http.Error(w, `{"message":"An error occurred during login"}`, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, `{"message":"Invalid email or password"}`, http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		log.Printf("issue token: %v", err)
		http.Error(w, `{"message":"An error occurred during login"}`, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(CookieTTL / time.Second),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}
