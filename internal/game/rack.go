package game

import (
	"log"
	"math/rand"
)

// BallRecord is the logical identity of a ball, distinct from its physical
// body. The record persists while the ball is potted; the body does not.
type BallRecord struct {
	ID     int    `json:"id"`
	Colour Colour `json:"colour"`
	Potted bool   `json:"potted"`
}

// Rack manages the logical ball set and its placement on the table: rack
// formation, overlap-free placement checks, potting bookkeeping, re-spots and
// cue-ball placement.
type Rack struct {
	world   *World
	table   *Table
	records [NumBalls]*BallRecord
	rng     *rand.Rand

	cuePending     bool
	settleTicks    int
	pendingRespots []Colour
}

// NewRack creates a rack bound to a world and table. The seed fixes the
// random layouts for reproducible tests.
func NewRack(world *World, table *Table, seed int64) *Rack {
	r := &Rack{
		world: world,
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
	}
	for id := 0; id < NumBalls; id++ {
		r.records[id] = &BallRecord{ID: id, Colour: ColourOfBall(id), Potted: true}
	}
	return r
}

// Record returns the logical record for a ball id, or nil.
func (r *Rack) Record(id int) *BallRecord {
	if id < 0 || id >= NumBalls {
		return nil
	}
	return r.records[id]
}

// CuePending reports whether the cue ball awaits placement in the D.
func (r *Rack) CuePending() bool {
	return r.cuePending
}

// Settling reports whether a freshly laid rack is still in its settle phase.
func (r *Rack) Settling() bool {
	return r.settleTicks > 0
}

// TickSettle counts down the settle phase. When it expires every body's
// velocity is zeroed and its sensor flag cleared, so normal physics resumes
// from a clean rest state. Counted in physics ticks, not wall clock, so rack
// setup is reproducible.
func (r *Rack) TickSettle() {
	if r.settleTicks == 0 {
		return
	}
	r.settleTicks--
	if r.settleTicks == 0 {
		for _, b := range r.world.Bodies() {
			b.Velocity = Vec2{}
			b.Sensor = false
		}
	}
}

// LayoutStandard racks a standard frame: 15 reds in a five-row triangle with
// the apex near the pink spot, the six colours on their spots, and the cue
// ball pending placement in the D.
func (r *Rack) LayoutStandard() {
	r.reset()

	row := 0
	inRow := 0
	rowStep := BallDiameter * 0.87
	ySpacing := BallDiameter * 1.05
	for id := FirstRedID; id <= LastRedID; id++ {
		if inRow > row {
			row++
			inRow = 0
		}
		x := r.table.RedApex.X + float64(row)*rowStep
		y := r.table.RedApex.Y + (float64(inRow)-float64(row)/2)*ySpacing
		r.placeBall(id, NewVec2(x, y))
		inRow++
	}

	r.placeColoursOnSpots()
	r.settleTicks = SettleTicks
}

// LayoutRandomReds racks the colours on their spots and scatters the 15 reds
// by rejection sampling. The sampler is capped defensively; exhaustion is
// next to impossible on a table this size, but a run that does hit the cap
// omits the red rather than spinning forever.
func (r *Rack) LayoutRandomReds() {
	r.reset()
	r.placeColoursOnSpots()

	for id := FirstRedID; id <= LastRedID; id++ {
		if !r.placeRandom(id, RandomRedsAttempts) {
			log.Printf("[RACK] no room for red %d after %d attempts, omitted", id, RandomRedsAttempts)
		}
	}
	r.settleTicks = SettleTicks
}

// LayoutRandomAll scatters all 21 object balls by rejection sampling with a
// bounded attempt count per ball. A ball that finds no slot is omitted from
// the rack; that is recorded, not fatal.
func (r *Rack) LayoutRandomAll() {
	r.reset()

	for id := FirstRedID; id < NumBalls; id++ {
		if !r.placeRandom(id, RandomAllAttempts) {
			log.Printf("[RACK] no room for ball %d (%s) after %d attempts, omitted", id, ColourOfBall(id), RandomAllAttempts)
		}
	}
	r.settleTicks = SettleTicks
}

// IsValidPlacement reports whether a new ball centred at (x, y) would sit on
// the table with breathing room from every active ball.
func (r *Rack) IsValidPlacement(x, y float64) bool {
	p := NewVec2(x, y)
	if p.X < BallRadius || p.X > TableWidth-BallRadius ||
		p.Y < BallRadius || p.Y > TableHeight-BallRadius {
		return false
	}
	for _, b := range r.world.Bodies() {
		if b.Position.DistanceTo(p) < MinSeparation {
			return false
		}
	}
	return true
}

// PlaceCueBall creates (or re-creates) the cue body at the given point. Any
// existing cue body is removed first, so the call is idempotent. D-zone
// validation is the caller's responsibility.
func (r *Rack) PlaceCueBall(x, y float64) {
	r.world.RemoveBody(BallCue)
	r.world.AddBody(NewBallBody(BallCue, NewVec2(x, y)))
	r.records[BallCue].Potted = false
	r.cuePending = false
}

// MarkPotted records a capture: the logical record flips to potted and the
// physical body leaves the world. Returns false for an already-potted ball,
// making duplicate capture events harmless.
func (r *Rack) MarkPotted(id int) bool {
	rec := r.Record(id)
	if rec == nil || rec.Potted {
		return false
	}
	rec.Potted = true
	r.world.RemoveBody(id)
	if id == BallCue {
		r.cuePending = true
	}
	return true
}

// Respot re-creates the body for a potted coloured ball on its spot, but
// only when the spot is clear. Returns whether the ball went back on.
func (r *Rack) Respot(c Colour) bool {
	if !c.IsColoured() {
		return false
	}
	id := ballIDForColour(c)
	rec := r.Record(id)
	if rec == nil || !rec.Potted {
		return false
	}
	spot, ok := r.table.SpotFor(c)
	if !ok || !r.IsValidPlacement(spot.X, spot.Y) {
		return false
	}
	r.world.AddBody(NewBallBody(id, spot))
	rec.Potted = false
	return true
}

// QueueRespot schedules a coloured ball for re-spotting. If its spot is
// occupied the attempt is retried at every end of shot until it clears.
func (r *Rack) QueueRespot(c Colour) {
	if !c.IsColoured() {
		return
	}
	for _, q := range r.pendingRespots {
		if q == c {
			return
		}
	}
	r.pendingRespots = append(r.pendingRespots, c)
}

// ProcessRespots retries every queued re-spot, keeping the ones whose spot is
// still occupied.
func (r *Rack) ProcessRespots() {
	var remaining []Colour
	for _, c := range r.pendingRespots {
		if !r.Respot(c) {
			remaining = append(remaining, c)
		}
	}
	r.pendingRespots = remaining
}

// ActiveBalls returns a view of every ball record with the live position for
// un-potted balls.
func (r *Rack) ActiveBalls() []BallView {
	views := make([]BallView, 0, NumBalls)
	for _, rec := range r.records {
		v := BallView{ID: rec.ID, Colour: rec.Colour, Potted: rec.Potted}
		if b := r.world.Body(rec.ID); b != nil {
			v.X = b.Position.X
			v.Y = b.Position.Y
		}
		views = append(views, v)
	}
	return views
}

func (r *Rack) reset() {
	r.world.Clear()
	for _, rec := range r.records {
		rec.Potted = true
	}
	r.cuePending = true
	r.pendingRespots = nil
	r.settleTicks = 0
}

func (r *Rack) placeColoursOnSpots() {
	for id := BallYellow; id <= BallBlack; id++ {
		r.placeBall(id, r.table.Spots[ColourOfBall(id)])
	}
}

// placeBall creates a sensor body so the batch placement of a tight rack
// cannot trigger explosive overlap resolution before the settle phase ends.
func (r *Rack) placeBall(id int, p Vec2) {
	b := NewBallBody(id, p)
	b.Sensor = true
	r.world.AddBody(b)
	r.records[id].Potted = false
}

func (r *Rack) placeRandom(id, attempts int) bool {
	for i := 0; i < attempts; i++ {
		x := BallRadius + r.rng.Float64()*(TableWidth-BallDiameter)
		y := BallRadius + r.rng.Float64()*(TableHeight-BallDiameter)
		if r.IsValidPlacement(x, y) {
			r.placeBall(id, NewVec2(x, y))
			return true
		}
	}
	return false
}

func ballIDForColour(c Colour) int {
	switch c {
	case ColourYellow:
		return BallYellow
	case ColourGreen:
		return BallGreen
	case ColourBrown:
		return BallBrown
	case ColourBlue:
		return BallBlue
	case ColourPink:
		return BallPink
	case ColourBlack:
		return BallBlack
	}
	return -1
}
