package game

// Simulation is the aggregate that owns the whole engine: physics world,
// table geometry, pocket system, rack, shot controller and rules. It is the
// single entry point the boundary layers use; no component is reachable as a
// global. One goroutine drives Tick and issues commands; everything else
// reads snapshots.
type Simulation struct {
	world   *World
	table   *Table
	pockets *PocketSystem
	rack    *Rack
	shot    *ShotController
	rules   *MatchRules

	ballsWereMoving bool
	pending         []Event // command-produced events, flushed on the next tick
}

// NewSimulation assembles an engine with an empty table. The seed fixes the
// rack's random layouts.
func NewSimulation(seed int64) *Simulation {
	table := NewSnookerTable()
	world := NewWorld(table)
	return &Simulation{
		world:   world,
		table:   table,
		pockets: NewPocketSystem(table),
		rack:    NewRack(world, table, seed),
		shot:    NewShotController(),
		rules:   NewMatchRules(),
	}
}

// SelectLayout racks a new frame. Any aim in progress is cancelled.
func (s *Simulation) SelectLayout(mode LayoutMode) {
	s.shot.Reset()
	switch mode {
	case LayoutRandomReds:
		s.rack.LayoutRandomReds()
	case LayoutRandomAll:
		s.rack.LayoutRandomAll()
	default:
		s.rack.LayoutStandard()
	}
	s.ballsWereMoving = false
	s.rules.ClearCuePlacement()
}

// PlaceCueBall puts the cue ball at a D-zone point. Rejected without state
// change if placement is not pending, the point is outside the D, or it
// would crowd another ball.
func (s *Simulation) PlaceCueBall(x, y float64) bool {
	if !s.rack.CuePending() {
		return false
	}
	if !s.table.IsInDZone(x, y) || !s.rack.IsValidPlacement(x, y) {
		return false
	}
	s.rack.PlaceCueBall(x, y)
	s.rules.ClearCuePlacement()
	return true
}

// StartAim begins the drag gesture. Rejected while balls are moving, a rack
// is settling, or the cue ball is off the table.
func (s *Simulation) StartAim(x, y float64) bool {
	if s.BallsMoving() || s.rack.Settling() || s.rack.CuePending() {
		return false
	}
	cue := s.world.Body(BallCue)
	if cue == nil {
		return false
	}
	return s.shot.StartAim(NewVec2(x, y), cue.Position)
}

// UpdateAim moves the drag cursor.
func (s *Simulation) UpdateAim(x, y float64) {
	s.shot.UpdateAim(NewVec2(x, y))
}

// ReleaseAim fires the shot if the drag carried enough power; an under-drag
// is a silent cancel. The impulse drives the cue ball toward the cursor.
func (s *Simulation) ReleaseAim() bool {
	dir, power, ok := s.shot.Release()
	if !ok {
		return false
	}
	cue := s.world.Body(BallCue)
	if cue == nil {
		return false
	}
	cue.Velocity = dir.Times(power * ForceScale)
	s.rules.OnShotTaken(power)
	s.pending = append(s.pending, Event{Type: EventShotTaken, BallID: BallCue, Power: power})
	return true
}

// CancelAim drops the gesture without firing.
func (s *Simulation) CancelAim() {
	s.shot.Reset()
}

// Tick advances the engine by one fixed step and returns every event the
// step produced. Within the tick the order is fixed: settle countdown,
// integration and contacts, pocket capture, rules consumption, end-of-shot
// detection.
func (s *Simulation) Tick() []Event {
	events := s.pending
	s.pending = nil

	s.rack.TickSettle()

	contacts := s.world.Tick()
	captures := s.pockets.Step(s.world)

	// Rules consume in fixed order: cue contacts, cue cushion hits, pots,
	// then end-of-shot.
	for _, e := range contacts {
		if e.Type != EventBallCollision || !e.InvolvesCue() {
			continue
		}
		other := e.OtherID
		if other == BallCue {
			other = e.BallID
		}
		s.rules.OnCueContact(ColourOfBall(other))
	}
	for _, e := range contacts {
		if e.Type == EventCushionCollision && e.BallID == BallCue {
			s.rules.OnCueCushion()
		}
	}
	events = append(events, contacts...)

	for _, e := range captures {
		if !s.rack.MarkPotted(e.BallID) {
			continue // duplicate or late capture, ignore
		}
		events = append(events, e)
		s.rules.OnBallPotted(e.Colour)
		if e.Colour.IsColoured() {
			s.rack.QueueRespot(e.Colour)
		}
	}

	moving := s.world.AnyMoving(StopEpsilon)
	if s.ballsWereMoving && !moving {
		s.rules.OnEndShot()
		s.rack.ProcessRespots()
	}
	s.ballsWereMoving = moving

	return events
}

// BallsMoving reports whether any ball is above the rest threshold.
func (s *Simulation) BallsMoving() bool {
	return s.world.AnyMoving(StopEpsilon)
}

// CuePlacementPending reports whether the cue ball must be placed in the D
// before the next shot.
func (s *Simulation) CuePlacementPending() bool {
	return s.rack.CuePending()
}

// Balls returns the per-ball snapshot for rendering.
func (s *Simulation) Balls() []BallView {
	return s.rack.ActiveBalls()
}

// ShotState returns the aim snapshot.
func (s *Simulation) ShotState() ShotView {
	return s.shot.View()
}

// Match returns the scoring snapshot.
func (s *Simulation) Match() MatchState {
	return s.rules.Snapshot()
}

// Rules exposes the rule engine for the match layer (concede, penalties).
func (s *Simulation) Rules() *MatchRules {
	return s.rules
}

// Table exposes the static geometry for placement previews.
func (s *Simulation) Table() *Table {
	return s.table
}
