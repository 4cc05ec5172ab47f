package game

import (
	"math"
	"testing"
)

func newTestWorld() *World {
	return NewWorld(NewSnookerTable())
}

func TestResolveBallBallExchangesNormalVelocity(t *testing.T) {
	a := NewBallBody(1, NewVec2(0, 0))
	a.Velocity = NewVec2(10, 0)
	b := NewBallBody(2, NewVec2(4.9, 0))

	ev, hit := resolveBallBall(a, b)
	if !hit {
		t.Fatal("overlapping pair reported no contact")
	}
	if ev.Type != EventBallCollision || ev.BallID != 1 || ev.OtherID != 2 {
		t.Errorf("unexpected event: %+v", ev)
	}

	// Head-on: the struck ball takes the restitution-scaled share, the
	// striker keeps the remainder. Momentum along the normal is conserved.
	if math.Abs(b.Velocity.X-10*BallRestitution) > 1e-9 {
		t.Errorf("struck ball velocity: got %f, want %f", b.Velocity.X, 10*BallRestitution)
	}
	if math.Abs(a.Velocity.X-10*(1-BallRestitution)) > 1e-9 {
		t.Errorf("striker velocity: got %f, want %f", a.Velocity.X, 10*(1-BallRestitution))
	}
	if math.Abs(a.Velocity.X+b.Velocity.X-10) > 1e-9 {
		t.Errorf("normal momentum not conserved: %f + %f", a.Velocity.X, b.Velocity.X)
	}

	// Positional correction must fully separate the pair.
	if d := a.Position.DistanceTo(b.Position); d < BallDiameter-1e-9 {
		t.Errorf("pair still overlapping after resolution: dist %f", d)
	}
}

func TestResolveBallBallNoContactBeyondDiameter(t *testing.T) {
	a := NewBallBody(1, NewVec2(0, 0))
	b := NewBallBody(2, NewVec2(BallDiameter+0.01, 0))
	if _, hit := resolveBallBall(a, b); hit {
		t.Error("separated pair reported contact")
	}
}

func TestHeadOnCollisionThroughTick(t *testing.T) {
	w := newTestWorld()
	a := NewBallBody(1, NewVec2(85, 44.5))
	a.Velocity = NewVec2(30, 0)
	b := NewBallBody(2, NewVec2(92, 44.5))
	w.AddBody(a)
	w.AddBody(b)

	var collided bool
	for i := 0; i < 60 && !collided; i++ {
		for _, ev := range w.Tick() {
			if ev.Type == EventBallCollision && ev.BallID == 1 && ev.OtherID == 2 {
				collided = true
			}
		}
	}
	if !collided {
		t.Fatal("no ball collision within 60 ticks")
	}
	if b.Velocity.X <= 0 {
		t.Errorf("struck ball not moving forward: %f", b.Velocity.X)
	}
	if a.Velocity.X >= b.Velocity.X {
		t.Errorf("striker (%f) not slower than struck ball (%f)", a.Velocity.X, b.Velocity.X)
	}
}

func TestFrictionStopsBall(t *testing.T) {
	w := newTestWorld()
	b := NewBallBody(1, NewVec2(89, 44.5))
	b.Velocity = NewVec2(20, 0)
	w.AddBody(b)

	for i := 0; i < 600; i++ {
		w.Tick()
	}
	if w.AnyMoving(0.01) {
		t.Errorf("ball still moving after 600 ticks: speed %f", b.Velocity.Magnitude())
	}
	if b.Position.X <= 89 {
		t.Error("ball did not travel before stopping")
	}
	if b.Position.X > 120 {
		t.Errorf("ball rolled unrealistically far: x=%f", b.Position.X)
	}
}

func TestCushionBounceReversesNormalComponent(t *testing.T) {
	w := newTestWorld()
	b := NewBallBody(1, NewVec2(160, 44.5))
	b.Velocity = NewVec2(60, 0)
	w.AddBody(b)

	var bounced bool
	for i := 0; i < 120 && !bounced; i++ {
		for _, ev := range w.Tick() {
			if ev.Type == EventCushionCollision && ev.BallID == 1 {
				bounced = true
			}
		}
	}
	if !bounced {
		t.Fatal("no cushion collision within 120 ticks")
	}
	if b.Velocity.X >= 0 {
		t.Errorf("velocity not reversed off cushion: %f", b.Velocity.X)
	}
	if b.Position.X > TableWidth-BallRadius+1e-6 {
		t.Errorf("ball left the playing surface: x=%f", b.Position.X)
	}
}

func TestSpeedClamp(t *testing.T) {
	w := newTestWorld()
	b := NewBallBody(1, NewVec2(20, 44.5))
	b.Velocity = NewVec2(1000, 0)
	w.AddBody(b)

	w.Tick()
	if s := b.Velocity.Magnitude(); s > MaxSpeed+1e-9 {
		t.Errorf("speed %f exceeds clamp %f", s, MaxSpeed)
	}
}

func TestEscapedBallResetToCentre(t *testing.T) {
	w := newTestWorld()
	b := NewBallBody(1, NewVec2(300, 44.5))
	w.AddBody(b)

	w.Tick()
	if b.Position.DistanceTo(NewVec2(TableWidth/2, TableHeight/2)) > 1e-9 {
		t.Errorf("escaped ball not reset to centre: %+v", b.Position)
	}
	if !b.Velocity.IsZero() {
		t.Errorf("reset ball still has velocity: %+v", b.Velocity)
	}
}

func TestNaNBallResetToCentre(t *testing.T) {
	w := newTestWorld()
	b := NewBallBody(1, NewVec2(math.NaN(), 10))
	w.AddBody(b)

	w.Tick()
	if !b.Position.IsFinite() {
		t.Error("non-finite position survived a tick")
	}
}

func TestSensorBodiesPassThrough(t *testing.T) {
	w := newTestWorld()
	sensor := NewBallBody(1, NewVec2(89, 44.5))
	sensor.Sensor = true
	solid := NewBallBody(2, NewVec2(90, 44.5)) // overlapping
	w.AddBody(sensor)
	w.AddBody(solid)

	if events := w.Tick(); len(events) != 0 {
		t.Errorf("sensor overlap produced events: %+v", events)
	}
}

func TestTickDeterminism(t *testing.T) {
	build := func() *World {
		w := newTestWorld()
		for i := 1; i <= 5; i++ {
			b := NewBallBody(i, NewVec2(40+float64(i)*8, 30+float64(i)*5))
			b.Velocity = NewVec2(float64(30-i*7), float64(i*4))
			w.AddBody(b)
		}
		return w
	}

	w1 := build()
	w2 := build()
	for i := 0; i < 240; i++ {
		w1.Tick()
		w2.Tick()
	}
	for i := 1; i <= 5; i++ {
		p1 := w1.Body(i).Position
		p2 := w2.Body(i).Position
		if p1 != p2 {
			t.Errorf("ball %d diverged: %+v vs %+v", i, p1, p2)
		}
	}
}

func TestAddBodyReplacesSameID(t *testing.T) {
	w := newTestWorld()
	w.AddBody(NewBallBody(3, NewVec2(10, 10)))
	w.AddBody(NewBallBody(3, NewVec2(20, 20)))

	if len(w.Bodies()) != 1 {
		t.Fatalf("expected 1 body, got %d", len(w.Bodies()))
	}
	if w.Body(3).Position.X != 20 {
		t.Error("replacement did not take effect")
	}
}

func TestBodiesSortedByID(t *testing.T) {
	w := newTestWorld()
	for _, id := range []int{7, 2, 9, 1} {
		w.AddBody(NewBallBody(id, NewVec2(float64(id*10), 40)))
	}
	prev := -1
	for _, b := range w.Bodies() {
		if b.ID <= prev {
			t.Fatalf("bodies not in id order: %d after %d", b.ID, prev)
		}
		prev = b.ID
	}
}
