package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playsnooker/backend/internal/game"
)

// Client command payloads.
type pointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type layoutData struct {
	Mode game.LayoutMode `json:"mode"`
}

// runningLoops guards against starting two tick loops for one match.
var (
	runningLoops   = make(map[string]bool)
	runningLoopsMu sync.Mutex
)

// HandleWebSocket authenticates the player token against the match and joins
// the socket to the match room.
func HandleWebSocket(c *gin.Context, mgr *game.MatchManager, hub *Hub) {
	matchToken := c.Param("token")
	playerToken := c.Query("pt")
	if matchToken == "" || playerToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and pt required"})
		return
	}

	m, err := mgr.GetMatch(matchToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	player := m.PlayerByToken(playerToken)
	if player == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid player token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:       conn,
		playerID:   player.ID,
		matchToken: matchToken,
		send:       make(chan []byte, 256),
	}
	hub.add(client)
	m.SetPlayerConnected(player.ID, true)
	log.Printf("[WS] player %s connected to match %s", player.ID, m.ID)

	go client.writePump()
	go client.readPump(mgr, hub, m, player.ID)

	if m.BothPlayersConnected() && m.CurrentStatus() == game.StatusWaiting {
		m.Begin()
		hub.BroadcastToMatch(matchToken, gin.H{"type": "match_starting"})
		startMatchLoop(mgr, hub, m)
	}
}

// readPump reads client commands and applies them to the simulation under
// the match lock.
func (c *Client) readPump(mgr *game.MatchManager, hub *Hub, m *game.Match, playerID string) {
	defer func() {
		// A reconnect replaces this client in the hub before this defer
		// runs; only a removal of the current connection is a disconnect.
		wasCurrent := hub.remove(c)
		c.conn.Close()
		if wasCurrent {
			m.SetPlayerConnected(playerID, false)
			log.Printf("[WS] player %s disconnected from match %s", playerID, m.ID)
		}
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}
		dispatch(mgr, hub, m, c, playerID, msg)
	}
}

// dispatch applies one client command. Turn ownership is enforced here, at
// the boundary; the engine itself silently rejects anything else invalid.
func dispatch(mgr *game.MatchManager, hub *Hub, m *game.Match, c *Client, playerID string, msg WSMessage) {
	seat := m.SeatOf(playerID)

	switch msg.Type {
	case "place_cue_ball":
		var d pointData
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			c.sendError("invalid placement data")
			return
		}
		withSim(m, func(sim *game.Simulation) {
			if seat != sim.Match().CurrentPlayer {
				c.sendError("not your turn")
				return
			}
			if !sim.PlaceCueBall(d.X, d.Y) {
				c.sendError("invalid cue ball position")
			}
		})

	case "aim_start":
		var d pointData
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return
		}
		withSim(m, func(sim *game.Simulation) {
			if seat == sim.Match().CurrentPlayer {
				sim.StartAim(d.X, d.Y)
			}
		})

	case "aim_update":
		var d pointData
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return
		}
		withSim(m, func(sim *game.Simulation) {
			if seat == sim.Match().CurrentPlayer {
				sim.UpdateAim(d.X, d.Y)
			}
		})

	case "aim_release":
		withSim(m, func(sim *game.Simulation) {
			if seat == sim.Match().CurrentPlayer {
				sim.ReleaseAim()
			}
		})

	case "aim_cancel":
		withSim(m, func(sim *game.Simulation) {
			if seat == sim.Match().CurrentPlayer {
				sim.CancelAim()
			}
		})

	case "select_layout":
		var d layoutData
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return
		}
		withSim(m, func(sim *game.Simulation) {
			sim.SelectLayout(d.Mode)
		})
		hub.BroadcastToMatch(m.Token, gin.H{"type": "layout_selected", "mode": d.Mode})

	case "concede":
		winner := m.OpponentID(playerID)
		if winner == "" {
			c.sendError("no opponent to concede to")
			return
		}
		mgr.CompleteMatch(m, winner, "concede")
		hub.BroadcastToMatch(m.Token, gin.H{"type": "match_over", "winner": winner, "win_type": "concede"})

	case "mute_toggle":
		// Pass-through for the opponent's client; no engine behavior.
		if opp := m.OpponentID(playerID); opp != "" {
			hub.SendToPlayer(opp, gin.H{"type": "opponent_muted"})
		}

	default:
		c.sendError("unknown message type")
	}
}

// withSim runs fn with exclusive access to the match simulation.
func withSim(m *game.Match, fn func(*game.Simulation)) {
	m.Lock()
	defer m.Unlock()
	fn(m.Sim)
}

// startMatchLoop drives the simulation at the fixed tick rate and broadcasts
// state. The loop goroutine is the single owner of the simulation; commands
// and ticks serialize on the match lock.
func startMatchLoop(mgr *game.MatchManager, hub *Hub, m *game.Match) {
	runningLoopsMu.Lock()
	if runningLoops[m.Token] {
		runningLoopsMu.Unlock()
		return
	}
	runningLoops[m.Token] = true
	runningLoopsMu.Unlock()

	go func() {
		defer func() {
			runningLoopsMu.Lock()
			delete(runningLoops, m.Token)
			runningLoopsMu.Unlock()
		}()

		ticker := time.NewTicker(time.Second / 60)
		defer ticker.Stop()
		snapshotEvery := 0

		for range ticker.C {
			if m.CurrentStatus() != game.StatusInProgress {
				return
			}

			var events []game.Event
			var moving bool
			withSim(m, func(sim *game.Simulation) {
				events = sim.Tick()
				moving = sim.BallsMoving()
			})

			if len(events) > 0 {
				hub.BroadcastToMatch(m.Token, gin.H{"type": "events", "events": events})
				PublishMatchEvents(context.Background(), mgr, m.Token, events)
			}

			// Full state every tick while anything moves, else once a
			// half second to keep idle clients in sync.
			snapshotEvery++
			if moving || len(events) > 0 || snapshotEvery >= 30 {
				snapshotEvery = 0
				broadcastState(hub, m)
			}

			if len(events) > 0 {
				mgr.SaveSnapshot(context.Background(), m)
			}

			checkDisconnectForfeit(mgr, hub, m)
		}
	}()
}

func broadcastState(hub *Hub, m *game.Match) {
	var payload gin.H
	withSim(m, func(sim *game.Simulation) {
		payload = gin.H{
			"type":                  "state",
			"balls":                 sim.Balls(),
			"match":                 sim.Match(),
			"shot":                  sim.ShotState(),
			"balls_moving":          sim.BallsMoving(),
			"cue_placement_pending": sim.CuePlacementPending(),
		}
	})
	hub.BroadcastToMatch(m.Token, payload)
}

// checkDisconnectForfeit ends the match when a player stays gone past the
// grace period.
func checkDisconnectForfeit(mgr *game.MatchManager, hub *Hub, m *game.Match) {
	gone := m.DisconnectedPastGrace(time.Duration(mgr.Config().DisconnectGracePeriodSecs) * time.Second)
	if gone == "" {
		return
	}
	winner := m.OpponentID(gone)
	if winner == "" {
		return
	}
	mgr.CompleteMatch(m, winner, "forfeit")
	hub.BroadcastToMatch(m.Token, gin.H{"type": "match_over", "winner": winner, "win_type": "forfeit"})
}
