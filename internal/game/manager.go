package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/playsnooker/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// MatchPlayer is one seat at the table.
type MatchPlayer struct {
	ID             string     `json:"id"`
	DisplayName    string     `json:"display_name"`
	DBPlayerID     int        `json:"db_player_id,omitempty"`
	PlayerToken    string     `json:"-"`
	Connected      bool       `json:"connected"`
	DisconnectedAt *time.Time `json:"-"`
	Seat           int        `json:"seat"` // 1 or 2, maps to rules.CurrentPlayer
}

// Match binds two players to one Simulation. The simulation is mutated only
// under the match lock, by the websocket match loop.
type Match struct {
	ID           string
	Token        string
	Player1      *MatchPlayer
	Player2      *MatchPlayer
	Sim          *Simulation
	Status       MatchStatus
	Winner       string
	SessionID    int
	CreatedAt    time.Time
	ExpiresAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	LastActivity time.Time

	mu sync.RWMutex
}

// MatchManager owns all live matches. It is constructed in main and passed
// down explicitly; there is no package-level instance.
type MatchManager struct {
	matches map[string]*Match // by token
	db      *sqlx.DB
	rdb     *redis.Client
	cfg     *config.Config
	mu      sync.RWMutex
}

func NewMatchManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *MatchManager {
	return &MatchManager{
		matches: make(map[string]*Match),
		db:      db,
		rdb:     rdb,
		cfg:     cfg,
	}
}

func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// CreateMatch opens a match with the creator in seat 1 and returns it. The
// second seat stays open until JoinMatch.
func (mm *MatchManager) CreateMatch(displayName string, dbPlayerID int) *Match {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := time.Now()
	m := &Match{
		ID:    "match_" + generateToken(8),
		Token: generateToken(12),
		Player1: &MatchPlayer{
			ID:          "p_" + generateToken(6),
			DisplayName: displayName,
			DBPlayerID:  dbPlayerID,
			PlayerToken: generateToken(16),
			Seat:        1,
		},
		Sim:          NewSimulation(now.UnixNano()),
		Status:       StatusWaiting,
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Duration(mm.cfg.MatchExpiryMinutes) * time.Minute),
		LastActivity: now,
	}
	mm.matches[m.Token] = m

	if mm.db != nil {
		res := mm.db.QueryRow(
			`INSERT INTO sessions (match_token, player1_id, status, created_at, expiry_time)
			 VALUES ($1, $2, 'WAITING', $3, $4) RETURNING id`,
			m.Token, dbPlayerID, now, m.ExpiresAt)
		if err := res.Scan(&m.SessionID); err != nil {
			log.Printf("[DB] failed to record session for match %s: %v", m.ID, err)
		}
	}

	log.Printf("[MATCH] created %s (token %s) by %s", m.ID, m.Token, displayName)
	return m
}

// JoinMatch seats the second player.
func (mm *MatchManager) JoinMatch(token, displayName string, dbPlayerID int) (*Match, error) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	m, ok := mm.matches[token]
	if !ok {
		return nil, errors.New("match not found")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Player2 != nil {
		return nil, errors.New("match is full")
	}
	if m.Status != StatusWaiting {
		return nil, errors.New("match is not joinable")
	}
	m.Player2 = &MatchPlayer{
		ID:          "p_" + generateToken(6),
		DisplayName: displayName,
		DBPlayerID:  dbPlayerID,
		PlayerToken: generateToken(16),
		Seat:        2,
	}
	m.LastActivity = time.Now()

	if mm.db != nil && m.SessionID > 0 {
		if _, err := mm.db.Exec(`UPDATE sessions SET player2_id = $1 WHERE id = $2`, dbPlayerID, m.SessionID); err != nil {
			log.Printf("[DB] failed to record join for session %d: %v", m.SessionID, err)
		}
	}
	return m, nil
}

// GetMatch looks a match up by its token.
func (mm *MatchManager) GetMatch(token string) (*Match, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	m, ok := mm.matches[token]
	if !ok {
		return nil, errors.New("match not found")
	}
	return m, nil
}

// StartExpiryChecker culls matches that never started or went stale.
func (mm *MatchManager) StartExpiryChecker(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mm.expireMatches()
		}
	}
}

func (mm *MatchManager) expireMatches() {
	now := time.Now()
	mm.mu.Lock()
	defer mm.mu.Unlock()
	for token, m := range mm.matches {
		m.mu.Lock()
		expired := m.Status == StatusWaiting && now.After(m.ExpiresAt)
		done := m.Status == StatusCompleted && m.CompletedAt != nil && now.Sub(*m.CompletedAt) > time.Hour
		if expired {
			m.Status = StatusCancelled
		}
		m.mu.Unlock()
		if expired || done {
			delete(mm.matches, token)
			log.Printf("[MATCH] removed %s (expired=%v)", m.ID, expired)
		}
	}
}

// SaveSnapshot writes the match state to Redis so a lobby restart can show
// live matches. Per-shot history is deliberately not persisted.
func (mm *MatchManager) SaveSnapshot(ctx context.Context, m *Match) {
	if mm.rdb == nil {
		return
	}
	m.mu.RLock()
	snap := map[string]interface{}{
		"id":      m.ID,
		"status":  m.Status,
		"match":   m.Sim.Match(),
		"balls":   m.Sim.Balls(),
		"winner":  m.Winner,
		"updated": time.Now().Unix(),
	}
	token := m.Token
	m.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := mm.rdb.Set(ctx, "snooker:match:"+token, data, 2*time.Hour).Err(); err != nil {
		log.Printf("[REDIS] snapshot save failed for %s: %v", m.ID, err)
	}
}

// CompleteMatch finalizes a match, records the winner's session row and
// pushes career-best breaks to the leaderboard.
func (mm *MatchManager) CompleteMatch(m *Match, winnerID, winType string) {
	m.mu.Lock()
	if m.Status == StatusCompleted {
		m.mu.Unlock()
		return
	}
	m.Status = StatusCompleted
	m.Winner = winnerID
	now := time.Now()
	m.CompletedAt = &now
	state := m.Sim.Match()
	p1, p2 := m.Player1, m.Player2
	sessionID := m.SessionID
	m.mu.Unlock()

	log.Printf("[MATCH] %s completed, winner=%s (%s)", m.ID, winnerID, winType)

	if mm.db == nil {
		return
	}
	if sessionID > 0 {
		var winnerDB int
		if p1 != nil && p1.ID == winnerID {
			winnerDB = p1.DBPlayerID
		} else if p2 != nil && p2.ID == winnerID {
			winnerDB = p2.DBPlayerID
		}
		if _, err := mm.db.Exec(
			`UPDATE sessions SET status = 'COMPLETED', winner_id = $1, win_type = $2, completed_at = $3 WHERE id = $4`,
			winnerDB, winType, now, sessionID); err != nil {
			log.Printf("[DB] failed to complete session %d: %v", sessionID, err)
		}
	}
	mm.recordHighBreak(p1, state.HighestBreak)
	mm.recordHighBreak(p2, state.HighestBreak)
}

// recordHighBreak keeps a player's career-best break. The engine tracks one
// match-wide highest break; it is attributed to both seats' careers only
// when it beats their stored best, which errs on the generous side.
func (mm *MatchManager) recordHighBreak(p *MatchPlayer, best int) {
	if p == nil || p.DBPlayerID == 0 || best == 0 {
		return
	}
	if _, err := mm.db.Exec(
		`UPDATE players SET highest_break = GREATEST(highest_break, $1) WHERE id = $2`,
		best, p.DBPlayerID); err != nil {
		log.Printf("[DB] failed to record high break for player %d: %v", p.DBPlayerID, err)
	}
}

// Config exposes the manager's configuration to the transport layer.
func (mm *MatchManager) Config() *config.Config {
	return mm.cfg
}

// Redis exposes the Redis client for event fanout. May be nil in tests.
func (mm *MatchManager) Redis() *redis.Client {
	return mm.rdb
}

// === Match helpers (connection bookkeeping) ===

// Lock takes exclusive access to the match, including its simulation.
func (m *Match) Lock() { m.mu.Lock() }

// Unlock releases exclusive access.
func (m *Match) Unlock() { m.mu.Unlock() }

// CurrentStatus returns the match lifecycle status.
func (m *Match) CurrentStatus() MatchStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Status
}

// DisconnectedPastGrace returns the id of a player who has been disconnected
// for longer than the grace period, or "" if none.
func (m *Match) DisconnectedPastGrace(grace time.Duration) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Status != StatusInProgress {
		return ""
	}
	now := time.Now()
	for _, p := range []*MatchPlayer{m.Player1, m.Player2} {
		if p != nil && !p.Connected && p.DisconnectedAt != nil && now.Sub(*p.DisconnectedAt) > grace {
			return p.ID
		}
	}
	return ""
}

// PlayerByToken resolves a player token to the seated player, or nil.
func (m *Match) PlayerByToken(token string) *MatchPlayer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Player1 != nil && m.Player1.PlayerToken == token {
		return m.Player1
	}
	if m.Player2 != nil && m.Player2.PlayerToken == token {
		return m.Player2
	}
	return nil
}

// SetPlayerConnected flips a seat's connection flag.
func (m *Match) SetPlayerConnected(playerID string, connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range []*MatchPlayer{m.Player1, m.Player2} {
		if p != nil && p.ID == playerID {
			p.Connected = connected
			if connected {
				p.DisconnectedAt = nil
			} else {
				now := time.Now()
				p.DisconnectedAt = &now
			}
		}
	}
}

// BothPlayersConnected reports whether both seats have a live socket.
func (m *Match) BothPlayersConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Player1 != nil && m.Player1.Connected &&
		m.Player2 != nil && m.Player2.Connected
}

// Begin lays the opening rack and moves the match in progress.
func (m *Match) Begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Status != StatusWaiting {
		return
	}
	m.Sim.SelectLayout(LayoutStandard)
	now := time.Now()
	m.StartedAt = &now
	m.Status = StatusInProgress
	m.LastActivity = now
	log.Printf("[MATCH] %s started", m.ID)
}

// SeatOf maps a player id to its seat number (1 or 2), 0 if unknown.
func (m *Match) SeatOf(playerID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Player1 != nil && m.Player1.ID == playerID {
		return 1
	}
	if m.Player2 != nil && m.Player2.ID == playerID {
		return 2
	}
	return 0
}

// OpponentID returns the other seat's player id, or "" when the caller is
// not seated or has no opponent yet.
func (m *Match) OpponentID(playerID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Player1 != nil && m.Player1.ID == playerID {
		if m.Player2 != nil {
			return m.Player2.ID
		}
		return ""
	}
	if m.Player2 != nil && m.Player2.ID == playerID && m.Player1 != nil {
		return m.Player1.ID
	}
	return ""
}
