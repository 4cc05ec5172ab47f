package game

import "testing"

func TestPocketCapture(t *testing.T) {
	tbl := NewSnookerTable()
	w := NewWorld(tbl)
	ps := NewPocketSystem(tbl)

	b := NewBallBody(5, NewVec2(2, 2)) // inside the corner pocket core
	b.Velocity = NewVec2(-10, -10)
	w.AddBody(b)

	events := ps.Step(w)
	if len(events) != 1 {
		t.Fatalf("expected 1 capture event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != EventBallPotted || ev.BallID != 5 || ev.Colour != ColourRed {
		t.Errorf("unexpected capture event: %+v", ev)
	}
	if !b.Velocity.IsZero() {
		t.Errorf("captured ball still moving: %+v", b.Velocity)
	}
}

func TestPocketAttractionPullsTowardCentre(t *testing.T) {
	tbl := NewSnookerTable()
	w := NewWorld(tbl)
	ps := NewPocketSystem(tbl)

	// In the attraction band of the (0,0) pocket, outside its capture core.
	b := NewBallBody(1, NewVec2(6, 6))
	w.AddBody(b)

	events := ps.Step(w)
	if len(events) != 0 {
		t.Fatalf("attraction produced capture events: %+v", events)
	}
	if b.Velocity.X >= 0 || b.Velocity.Y >= 0 {
		t.Errorf("velocity not directed at the pocket: %+v", b.Velocity)
	}
}

func TestPocketAttractionDampsSpeed(t *testing.T) {
	tbl := NewSnookerTable()
	w := NewWorld(tbl)
	ps := NewPocketSystem(tbl)

	b := NewBallBody(1, NewVec2(6, 6))
	b.Velocity = NewVec2(0, -40) // running past the pocket mouth
	w.AddBody(b)

	before := b.Velocity.Magnitude()
	ps.Step(w)
	if after := b.Velocity.Magnitude(); after >= before {
		t.Errorf("funnel did not bleed speed: %f -> %f", before, after)
	}
}

func TestPocketIgnoresSensors(t *testing.T) {
	tbl := NewSnookerTable()
	w := NewWorld(tbl)
	ps := NewPocketSystem(tbl)

	b := NewBallBody(1, NewVec2(1, 1))
	b.Sensor = true
	w.AddBody(b)

	if events := ps.Step(w); len(events) != 0 {
		t.Errorf("sensor body captured: %+v", events)
	}
}

func TestBallAtTableCentreUnaffected(t *testing.T) {
	tbl := NewSnookerTable()
	w := NewWorld(tbl)
	ps := NewPocketSystem(tbl)

	b := NewBallBody(1, tbl.Centre())
	w.AddBody(b)

	ps.Step(w)
	if !b.Velocity.IsZero() {
		t.Errorf("centre ball picked up velocity: %+v", b.Velocity)
	}
}
