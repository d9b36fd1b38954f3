package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"bedwars/internal/auth"
	"bedwars/internal/database"
	"bedwars/internal/match"
	"bedwars/internal/world"
)

// MatchServer bundles the coordinator's shared components for the HTTP and
// WebSocket surfaces.
type MatchServer struct {
	Registry *match.Registry
	Sessions *SessionManager
	Resetter *world.Resetter
	Store    *database.Store
	Logger   *logrus.Logger
}

// NewMatchServer wires a server over pre-built components.
func NewMatchServer(reg *match.Registry, sm *SessionManager, rs *world.Resetter, st *database.Store, logger *logrus.Logger) *MatchServer {
	return &MatchServer{
		Registry: reg,
		Sessions: sm,
		Resetter: rs,
		Store:    st,
		Logger:   logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// bearerToken extracts a token from the Authorization header or the
// auth_token query parameter (for WebSocket clients).
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return r.URL.Query().Get("auth_token")
}

// requirePlayer authenticates a player session token and returns its subject.
func requirePlayer(w http.ResponseWriter, r *http.Request) (string, bool) {
	sub, _, err := auth.AuthenticateToken(bearerToken(r))
	if err != nil {
		http.Error(w, "invalid token", http.StatusForbidden)
		return "", false
	}
	return sub, true
}

// requireAdmin authenticates an admin token.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	_, role, err := auth.AuthenticateToken(bearerToken(r))
	if err != nil || role != "admin" {
		http.Error(w, "admin token required", http.StatusForbidden)
		return false
	}
	return true
}

// AdminLoginHandler verifies the admin password against ADMIN_PASSWORD_HASH
// (an Argon2id encoded hash) and issues an admin token.
func (s *MatchServer) AdminLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request payload", http.StatusBadRequest)
			return
		}
		hash := os.Getenv("ADMIN_PASSWORD_HASH")
		if hash == "" {
			http.Error(w, "admin login disabled", http.StatusForbidden)
			return
		}
		ok, err := auth.ComparePasswordAndHash(body.Password, hash)
		if err != nil || !ok {
			http.Error(w, "invalid credentials", http.StatusForbidden)
			return
		}
		token, err := auth.CreateSessionToken("admin", "admin")
		if err != nil {
			s.Logger.WithError(err).Error("failed to sign admin token")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}
