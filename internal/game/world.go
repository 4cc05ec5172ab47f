package game

import (
	"log"
	"sort"
)

// World owns all dynamic bodies and advances them by fixed steps against the
// table's static cushion geometry. It is single-owner: exactly one goroutine
// (the match loop) mutates it, and all within-tick ordering is deterministic
// (bodies and collision pairs are processed in ascending ball id).
type World struct {
	table  *Table
	bodies []*Body // sorted by ID
	index  map[int]*Body
}

func NewWorld(table *Table) *World {
	return &World{
		table: table,
		index: make(map[int]*Body),
	}
}

// AddBody inserts a body, replacing any existing body with the same id.
func (w *World) AddBody(b *Body) {
	if _, exists := w.index[b.ID]; exists {
		w.RemoveBody(b.ID)
	}
	w.index[b.ID] = b
	w.bodies = append(w.bodies, b)
	sort.Slice(w.bodies, func(i, j int) bool { return w.bodies[i].ID < w.bodies[j].ID })
}

// RemoveBody deletes the body with the given id, if present.
func (w *World) RemoveBody(id int) {
	if _, exists := w.index[id]; !exists {
		return
	}
	delete(w.index, id)
	for i, b := range w.bodies {
		if b.ID == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Body returns the body with the given id, or nil.
func (w *World) Body(id int) *Body {
	return w.index[id]
}

// Bodies returns the live body slice in id order. Callers must not mutate it.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Clear removes all bodies.
func (w *World) Clear() {
	w.bodies = nil
	w.index = make(map[int]*Body)
}

// AnyMoving reports whether any body's speed exceeds epsilon.
func (w *World) AnyMoving(epsilon float64) bool {
	for _, b := range w.bodies {
		if b.Velocity.MagnitudeSquared() > epsilon*epsilon {
			return true
		}
	}
	return false
}

// Tick advances the simulation by one fixed step Dt and returns the contact
// events produced. All bodies integrate before any collision pair is
// resolved.
func (w *World) Tick() []Event {
	var events []Event

	// Integration, drag and rolling friction.
	for _, b := range w.bodies {
		b.Position = b.Position.Plus(b.Velocity.Times(Dt))
		b.Velocity = b.Velocity.Times(1 - AirDrag)

		speed := b.Velocity.Magnitude()
		if speed > 0 {
			speed -= RollFriction * Dt
			if speed <= StopSpeed {
				b.Velocity = Vec2{}
			} else {
				b.Velocity = b.Velocity.Normalize().Times(speed)
			}
		}

		// Speed clamp prevents a single step from tunnelling a cushion.
		if b.Velocity.Magnitude() > MaxSpeed {
			b.Velocity = b.Velocity.Normalize().Times(MaxSpeed)
		}
	}

	// Numerical anomaly recovery: a body that escaped the table or picked up
	// a non-finite state is reset to the centre at rest before it can poison
	// contact resolution.
	for _, b := range w.bodies {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() || !w.table.InBounds(b.Position, EscapeMargin) {
			log.Printf("[SIM] ball %d escaped to (%.1f, %.1f), resetting to centre", b.ID, b.Position.X, b.Position.Y)
			b.Position = w.table.Centre()
			b.Velocity = Vec2{}
		}
	}

	// Ball-ball contacts, in (i,j) id order.
	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if a.Sensor {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if b.Sensor {
				continue
			}
			if ev, hit := resolveBallBall(a, b); hit {
				events = append(events, ev)
			}
		}
	}

	// Ball-cushion contacts.
	for _, b := range w.bodies {
		if b.Sensor {
			continue
		}
		for si := range w.table.Segments {
			if ev, hit := resolveBallSegment(b, &w.table.Segments[si]); hit {
				events = append(events, ev)
			}
		}
	}

	return events
}

// resolveBallBall tests one unordered pair for overlap and, on contact,
// exchanges normal velocity components scaled by restitution and separates
// the pair evenly along the contact normal (equal mass, equal radius).
func resolveBallBall(a, b *Body) (Event, bool) {
	delta := b.Position.Minus(a.Position)
	dist := delta.Magnitude()
	minDist := a.Radius + b.Radius
	if dist >= minDist || dist == 0 {
		return Event{}, false
	}

	n := delta.Normalize()
	t := n.RightNormal()

	relSpeed := a.Velocity.Minus(b.Velocity).Magnitude()

	aNormal := n.Times(a.Velocity.Dot(n))
	aTangent := t.Times(a.Velocity.Dot(t))
	bNormal := n.Times(b.Velocity.Dot(n))
	bTangent := t.Times(b.Velocity.Dot(t))

	a.Velocity = aTangent.Plus(bNormal.Times(BallRestitution).Plus(aNormal.Times(1 - BallRestitution)))
	b.Velocity = bTangent.Plus(aNormal.Times(BallRestitution).Plus(bNormal.Times(1 - BallRestitution)))

	overlap := minDist - dist
	a.Position = a.Position.Minus(n.Times(overlap / 2))
	b.Position = b.Position.Plus(n.Times(overlap / 2))

	return Event{
		Type:    EventBallCollision,
		BallID:  a.ID,
		OtherID: b.ID,
		Speed:   relSpeed,
	}, true
}

// resolveBallSegment pushes a penetrating ball out of a cushion and reflects
// the normal velocity component scaled by the cushion's restitution.
func resolveBallSegment(b *Body, s *Segment) (Event, bool) {
	cp := s.ClosestPoint(b.Position)
	delta := b.Position.Minus(cp)
	dist := delta.Magnitude()
	if dist >= b.Radius {
		return Event{}, false
	}

	var n Vec2
	if dist == 0 {
		n = s.Normal
	} else {
		n = delta.Normalize()
	}

	b.Position = b.Position.Plus(n.Times(b.Radius - dist))

	vn := b.Velocity.Dot(n)
	if vn >= 0 {
		// Already separating; positional correction was enough.
		return Event{}, false
	}
	b.Velocity = b.Velocity.Minus(n.Times((1 + s.Restitution) * vn))

	return Event{
		Type:   EventCushionCollision,
		BallID: b.ID,
		Speed:  -vn,
	}, true
}
