package ws

import "testing"

func newTestClient(playerID, matchToken string) *Client {
	return &Client{
		playerID:   playerID,
		matchToken: matchToken,
		send:       make(chan []byte, 1),
	}
}

func TestRemoveReportsCurrentClient(t *testing.T) {
	h := NewHub()
	c := newTestClient("p1", "m1")
	h.add(c)

	if !h.remove(c) {
		t.Fatal("removing the current client must report true")
	}
	if h.remove(c) {
		t.Error("removing an already-removed client must report false")
	}
	if _, ok := h.clients["p1"]; ok {
		t.Error("client still registered after remove")
	}
}

func TestStaleClientRemovalDoesNotUnregisterReplacement(t *testing.T) {
	h := NewHub()
	old := newTestClient("p1", "m1")
	h.add(old)

	// Reconnect: the new socket replaces the old one in the hub before the
	// old connection's teardown runs.
	replacement := newTestClient("p1", "m1")
	h.add(replacement)

	if h.remove(old) {
		t.Fatal("stale client teardown reported as a disconnect of the current connection")
	}
	if h.clients["p1"] != replacement {
		t.Error("replacement connection lost after stale removal")
	}
	if h.matchRooms["m1"]["p1"] != replacement {
		t.Error("replacement missing from the match room after stale removal")
	}

	if !h.remove(replacement) {
		t.Error("removing the live replacement must report true")
	}
	if _, ok := h.matchRooms["m1"]; ok {
		t.Error("empty match room not cleaned up")
	}
}
