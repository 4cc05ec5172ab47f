package game

import "testing"

func newTestRack(seed int64) (*Rack, *World, *Table) {
	tbl := NewSnookerTable()
	w := NewWorld(tbl)
	return NewRack(w, tbl, seed), w, tbl
}

func assertNoOverlap(t *testing.T, w *World, minDist float64) {
	t.Helper()
	bodies := w.Bodies()
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[i].Position.DistanceTo(bodies[j].Position)
			if d < minDist-1e-9 {
				t.Errorf("balls %d and %d too close: %f < %f",
					bodies[i].ID, bodies[j].ID, d, minDist)
			}
		}
	}
}

func TestLayoutStandard(t *testing.T) {
	r, w, tbl := newTestRack(1)
	r.LayoutStandard()

	if len(w.Bodies()) != NumBalls-1 {
		t.Fatalf("expected %d object balls, got %d", NumBalls-1, len(w.Bodies()))
	}
	if !r.CuePending() {
		t.Error("cue ball should await placement after racking")
	}
	if !r.Settling() {
		t.Error("fresh rack should be settling")
	}
	assertNoOverlap(t, w, BallDiameter)

	// Colours on their spots.
	for id := BallYellow; id <= BallBlack; id++ {
		spot := tbl.Spots[ColourOfBall(id)]
		if b := w.Body(id); b == nil || b.Position != spot {
			t.Errorf("%s not on its spot", ColourOfBall(id))
		}
	}

	// All 15 reds on the table.
	for id := FirstRedID; id <= LastRedID; id++ {
		if w.Body(id) == nil {
			t.Errorf("red %d missing from standard rack", id)
		}
	}
}

func TestLayoutRandomReds(t *testing.T) {
	r, w, tbl := newTestRack(7)
	r.LayoutRandomReds()

	if len(w.Bodies()) != NumBalls-1 {
		t.Fatalf("expected %d object balls, got %d", NumBalls-1, len(w.Bodies()))
	}
	assertNoOverlap(t, w, BallDiameter)

	for id := BallYellow; id <= BallBlack; id++ {
		spot := tbl.Spots[ColourOfBall(id)]
		if b := w.Body(id); b == nil || b.Position != spot {
			t.Errorf("%s not on its spot in random-reds layout", ColourOfBall(id))
		}
	}
}

func TestLayoutRandomAll(t *testing.T) {
	r, w, _ := newTestRack(11)
	r.LayoutRandomAll()

	if len(w.Bodies()) != NumBalls-1 {
		t.Fatalf("expected %d object balls, got %d", NumBalls-1, len(w.Bodies()))
	}
	assertNoOverlap(t, w, MinSeparation)
	if !r.CuePending() {
		t.Error("cue ball should await placement after racking")
	}
}

func TestSettleClearsSensorsAndVelocities(t *testing.T) {
	r, w, _ := newTestRack(1)
	r.LayoutStandard()

	for _, b := range w.Bodies() {
		if !b.Sensor {
			t.Fatal("freshly racked ball is not a sensor")
		}
	}
	for i := 0; i < SettleTicks; i++ {
		r.TickSettle()
	}
	if r.Settling() {
		t.Fatal("still settling after the full countdown")
	}
	for _, b := range w.Bodies() {
		if b.Sensor {
			t.Errorf("ball %d still a sensor after settling", b.ID)
		}
		if !b.Velocity.IsZero() {
			t.Errorf("ball %d not at rest after settling", b.ID)
		}
	}
}

func TestPlaceCueBallIdempotent(t *testing.T) {
	r, w, _ := newTestRack(1)
	r.LayoutStandard()

	r.PlaceCueBall(30, 44.5)
	r.PlaceCueBall(35, 40)

	count := 0
	for _, b := range w.Bodies() {
		if b.ID == BallCue {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one cue body, got %d", count)
	}
	if w.Body(BallCue).Position != NewVec2(35, 40) {
		t.Error("second placement did not move the cue ball")
	}
	if r.CuePending() {
		t.Error("cue still pending after placement")
	}
}

func TestMarkPottedIsDuplicateSafe(t *testing.T) {
	r, w, _ := newTestRack(1)
	r.LayoutStandard()

	if !r.MarkPotted(BallBlue) {
		t.Fatal("first capture rejected")
	}
	if r.MarkPotted(BallBlue) {
		t.Error("duplicate capture accepted")
	}
	if w.Body(BallBlue) != nil {
		t.Error("potted ball still has a body")
	}
	if !r.Record(BallBlue).Potted {
		t.Error("record not marked potted")
	}
}

func TestMarkPottedCueSetsPending(t *testing.T) {
	r, _, _ := newTestRack(1)
	r.LayoutStandard()
	r.PlaceCueBall(30, 44.5)

	if !r.MarkPotted(BallCue) {
		t.Fatal("cue capture rejected")
	}
	if !r.CuePending() {
		t.Error("potting the cue must re-arm placement")
	}
}

func TestRespotOnFreeSpot(t *testing.T) {
	r, w, tbl := newTestRack(1)
	r.LayoutStandard()
	r.MarkPotted(BallBlue)

	if !r.Respot(ColourBlue) {
		t.Fatal("re-spot onto a free spot rejected")
	}
	b := w.Body(BallBlue)
	if b == nil || b.Position != tbl.Spots[ColourBlue] {
		t.Error("blue not back on its spot")
	}
	if r.Record(BallBlue).Potted {
		t.Error("record still potted after re-spot")
	}
}

func TestRespotBlockedByOccupiedSpot(t *testing.T) {
	r, w, tbl := newTestRack(1)
	r.LayoutStandard()
	r.MarkPotted(BallBlue)

	// Park another ball on the blue spot.
	w.Body(BallPink).Position = tbl.Spots[ColourBlue]
	if r.Respot(ColourBlue) {
		t.Fatal("re-spot onto an occupied spot accepted")
	}

	w.Body(BallPink).Position = tbl.Spots[ColourPink]
	if !r.Respot(ColourBlue) {
		t.Error("re-spot still rejected after the spot cleared")
	}
}

func TestQueuedRespotRetriedUntilClear(t *testing.T) {
	r, w, tbl := newTestRack(1)
	r.LayoutStandard()
	r.MarkPotted(BallBlack)
	r.QueueRespot(ColourBlack)
	r.QueueRespot(ColourBlack) // duplicate queueing is a no-op

	w.Body(BallPink).Position = tbl.Spots[ColourBlack]
	r.ProcessRespots()
	if !r.Record(BallBlack).Potted {
		t.Fatal("black re-spotted onto an occupied spot")
	}

	w.Body(BallPink).Position = tbl.Spots[ColourPink]
	r.ProcessRespots()
	if r.Record(BallBlack).Potted {
		t.Error("black not re-spotted after the spot cleared")
	}
	if w.Body(BallBlack) == nil {
		t.Error("black has no body after re-spot")
	}
}

func TestRespotRejectsReds(t *testing.T) {
	r, _, _ := newTestRack(1)
	r.LayoutStandard()
	r.MarkPotted(FirstRedID)

	if r.Respot(ColourRed) {
		t.Error("reds must never re-spot")
	}
}

func TestIsValidPlacementBounds(t *testing.T) {
	r, _, _ := newTestRack(1)

	if r.IsValidPlacement(1, 44.5) {
		t.Error("placement overlapping the baulk cushion accepted")
	}
	if r.IsValidPlacement(89, -1) {
		t.Error("placement off the table accepted")
	}
	if !r.IsValidPlacement(89, 44.5) {
		t.Error("placement at the centre of an empty table rejected")
	}
}

func TestIsValidPlacementSeparation(t *testing.T) {
	r, w, _ := newTestRack(1)
	w.AddBody(NewBallBody(1, NewVec2(89, 44.5)))

	if r.IsValidPlacement(89+MinSeparation-0.1, 44.5) {
		t.Error("crowded placement accepted")
	}
	if !r.IsValidPlacement(89+MinSeparation+0.1, 44.5) {
		t.Error("clear placement rejected")
	}
}

func TestActiveBallsViews(t *testing.T) {
	r, _, _ := newTestRack(1)
	r.LayoutStandard()
	r.MarkPotted(BallPink)

	views := r.ActiveBalls()
	if len(views) != NumBalls {
		t.Fatalf("expected %d views, got %d", NumBalls, len(views))
	}
	for _, v := range views {
		switch v.ID {
		case BallCue:
			if !v.Potted {
				t.Error("unplaced cue ball should read as potted")
			}
		case BallPink:
			if !v.Potted {
				t.Error("potted pink should read as potted")
			}
		case BallBlack:
			if v.Potted {
				t.Error("black on the table reads as potted")
			}
		}
	}
}
