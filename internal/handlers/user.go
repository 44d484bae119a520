package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/denovi-gobackend/internal/metrics"
	"github.com/markjakearzadon/denovi-gobackend/internal/models"
	"github.com/markjakearzadon/denovi-gobackend/internal/sanitizer"
	"github.com/markjakearzadon/denovi-gobackend/internal/services"
)

var validate = validator.New()

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

// LoginLimit bounds login attempts per client address. With TrustProxy set
// the address is the last X-Forwarded-For hop, as appended by the reverse
// proxy in front of the server; otherwise it is the connection peer.
type LoginLimit struct {
	MaxAttempts int
	Window      time.Duration
	TrustProxy  bool
}

type UserHandler struct {
	users   Authenticator
	tokens  TokenIssuer
	limiter *sanitizer.RateLimiter
	limit   LoginLimit
}

func NewUserHandler(users Authenticator, tokens TokenIssuer, limiter *sanitizer.RateLimiter, limit LoginLimit) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, limiter: limiter, limit: limit}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUserHandler handles POST /api/login
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	key := clientIP(r, h.limit.TrustProxy)
	if !h.limiter.IsAllowed(key, h.limit.MaxAttempts, h.limit.Window) {
		metrics.LoginRejected.Inc()
		http.Error(w, "Too many login attempts", http.StatusTooManyRequests)
		return
	}

	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "Failed to login", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("section", "handlers").Str("method", "LoginUserHandler").Msg("Unable to issue token")
		http.Error(w, "Failed to login", http.StatusInternalServerError)
		return
	}

	h.limiter.Clear(key)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
			return last
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
