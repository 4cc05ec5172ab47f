package game

// PocketSystem turns pocket geometry into forces and captures. Each tick it
// inspects every non-sensor ball against every pocket:
//
//   - inside the capture core (capture radius * 0.85) the ball is potted;
//   - inside the attraction band it is pulled toward the pocket centre and
//     damped, so near-miss shots still funnel in.
//
// Capture wins over attraction for balls already inside the core. Removal of
// a captured body is the caller's job; the system only reports the event.
type PocketSystem struct {
	table *Table
}

func NewPocketSystem(table *Table) *PocketSystem {
	return &PocketSystem{table: table}
}

// Step applies attraction to funnel-zone balls and returns a capture event
// for every ball that crossed into a pocket core this tick, in ball id order.
func (ps *PocketSystem) Step(w *World) []Event {
	var events []Event

	for _, b := range w.Bodies() {
		if b.Sensor {
			continue
		}
		for pi := range ps.table.Pockets {
			p := &ps.table.Pockets[pi]
			dist := b.Position.DistanceTo(p.Position)

			if dist < p.CaptureRadius*PocketCaptureFactor {
				events = append(events, Event{
					Type:   EventBallPotted,
					BallID: b.ID,
					Colour: ColourOfBall(b.ID),
					Speed:  b.Velocity.Magnitude(),
				})
				b.Velocity = Vec2{}
				break // no further pockets for this ball
			}

			if dist > p.CaptureRadius*PocketAttractInner && dist < p.CaptureRadius*PocketAttractOuter {
				dir := p.Position.Minus(b.Position).Normalize()
				deficit := p.CaptureRadius*PocketAttractOuter - dist
				b.Velocity = b.Velocity.Plus(dir.Times(PocketPullGain * deficit * Dt))
				b.Velocity = b.Velocity.Times(PocketFunnelDamping)
			}
		}
	}

	return events
}
