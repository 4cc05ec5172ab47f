package game

import "testing"

func twoSeatMatch() *Match {
	return &Match{
		Player1: &MatchPlayer{ID: "p1", Seat: 1},
		Player2: &MatchPlayer{ID: "p2", Seat: 2},
	}
}

func TestOpponentID(t *testing.T) {
	m := twoSeatMatch()

	if got := m.OpponentID("p1"); got != "p2" {
		t.Errorf("opponent of p1: got %q, want p2", got)
	}
	if got := m.OpponentID("p2"); got != "p1" {
		t.Errorf("opponent of p2: got %q, want p1", got)
	}
	if got := m.OpponentID("stranger"); got != "" {
		t.Errorf("opponent of an unseated id: got %q, want empty", got)
	}
}

func TestOpponentIDBeforeSecondPlayerJoins(t *testing.T) {
	m := &Match{Player1: &MatchPlayer{ID: "p1", Seat: 1}}

	if got := m.OpponentID("p1"); got != "" {
		t.Errorf("creator must have no opponent before the join: got %q", got)
	}
}

func TestSeatOf(t *testing.T) {
	m := twoSeatMatch()

	if m.SeatOf("p1") != 1 || m.SeatOf("p2") != 2 {
		t.Error("seat lookup wrong for seated players")
	}
	if m.SeatOf("stranger") != 0 {
		t.Error("unseated id must map to seat 0")
	}
}
