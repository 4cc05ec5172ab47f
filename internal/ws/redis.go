package ws

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playsnooker/backend/internal/game"
)

const eventChannelPrefix = "snooker:events:"

// PublishMatchEvents fans the tick's events out over Redis so other nodes
// (and spectator relays) can follow matches they don't host.
func PublishMatchEvents(ctx context.Context, mgr *game.MatchManager, matchToken string, events []game.Event) {
	rdb := mgr.Redis()
	if rdb == nil {
		return
	}
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	if err := rdb.Publish(ctx, eventChannelPrefix+matchToken, data).Err(); err != nil {
		log.Printf("[REDIS] event publish failed for match %s: %v", matchToken, err)
	}
}

// StartEventSubscriber relays events for matches hosted on other nodes to
// locally connected clients. Matches whose tick loop runs on this node are
// skipped; their events were already broadcast directly.
func StartEventSubscriber(ctx context.Context, mgr *game.MatchManager, hub *Hub) {
	rdb := mgr.Redis()
	if rdb == nil {
		return
	}
	sub := rdb.PSubscribe(ctx, eventChannelPrefix+"*")
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				token := strings.TrimPrefix(msg.Channel, eventChannelPrefix)

				runningLoopsMu.Lock()
				local := runningLoops[token]
				runningLoopsMu.Unlock()
				if local {
					continue
				}

				var events []game.Event
				if err := json.Unmarshal([]byte(msg.Payload), &events); err != nil {
					continue
				}
				hub.BroadcastToMatch(token, gin.H{"type": "events", "events": events})
			}
		}
	}()
}
