package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"bedwars/internal/auth"
	"bedwars/internal/models"
)

// CreateSessionHandler issues an ephemeral player identity and session token.
// The client then connects to /ws with the token.
func (s *MatchServer) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad request payload", http.StatusBadRequest)
			return
		}
		playerID := uuid.New()
		token, err := auth.CreateSessionToken(playerID.String(), "player")
		if err != nil {
			s.Logger.WithError(err).Error("failed to sign session token")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"player_id": playerID.String(),
			"username":  body.Username,
			"token":     token,
		})
	}
}

// SessionWSHandler upgrades a player connection and streams match directives
// (chat, titles, teleports, inventory changes) to the client. Disconnecting
// removes the player from any match they were in.
func (s *MatchServer) SessionWSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, role, err := auth.AuthenticateToken(bearerToken(r))
		if err != nil || role != "player" {
			http.Error(w, "invalid session token", http.StatusForbidden)
			return
		}
		playerID, err := uuid.Parse(sub)
		if err != nil {
			http.Error(w, "invalid player id in token", http.StatusBadRequest)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"bedwars"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			s.Logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		username := r.URL.Query().Get("username")
		spawn := models.Location{World: "hub"}
		if s.Resetter != nil {
			spawn = s.Resetter.Fallback
		}
		sess := s.Sessions.Register(playerID, username, spawn)
		s.Logger.WithField("player", playerID).Info("player session connected")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go s.writePump(ctx, c, sess)
		s.readPump(ctx, c, playerID)

		// Cleanup: leaving the session also leaves any match.
		if m, in := s.Registry.MatchOf(playerID); in {
			m.LeavePlayer(playerID, true)
		}
		s.Sessions.Unregister(playerID)
		s.Logger.WithField("player", playerID).Info("player session disconnected")
	}
}

// readPump consumes client messages until the connection drops. Clients
// report their own movement; the server state stays authoritative for
// everything else.
func (s *MatchServer) readPump(ctx context.Context, c *websocket.Conn, playerID uuid.UUID) {
	for {
		typ, msg, err := c.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		var packet struct {
			Type     string           `json:"type"`
			Location *models.Location `json:"location,omitempty"`
		}
		if err := json.Unmarshal(msg, &packet); err != nil {
			s.Logger.Warnf("invalid json from player %v: %v", playerID, err)
			continue
		}
		switch packet.Type {
		case "move":
			if packet.Location != nil {
				s.Sessions.ReportLocation(playerID, *packet.Location)
			}
		case "ping":
			// Keepalive only.
		default:
			s.Logger.Debugf("unknown client packet %q from %v", packet.Type, playerID)
		}
	}
}

func (s *MatchServer) writePump(ctx context.Context, c *websocket.Conn, sess *Session) {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-sess.Out:
			data, err := json.Marshal(msg)
			if err != nil {
				s.Logger.Warnf("failed to marshal outgoing msg for %v: %v", sess.PlayerID, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		case <-ping.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
