package game

// Pocket is one of the six capture zones.
type Pocket struct {
	ID            int     `json:"id"`
	Position      Vec2    `json:"position"`
	CaptureRadius float64 `json:"capture_radius"`
}

// Table is the static geometric description of a snooker table: cushion
// segments with gaps at the pocket mouths, pocket centres, spot coordinates
// and the baulk/D geometry. The baulk end is the low-x side.
type Table struct {
	Segments []Segment
	Pockets  []Pocket
	Spots    map[Colour]Vec2
	DCenter  Vec2
	RedApex  Vec2
}

// NewSnookerTable builds the standard table geometry. Origin is the top-left
// corner pocket, x runs along the long axis.
func NewSnookerTable() *Table {
	cg := CornerPocketGap
	mg := MiddlePocketGap
	w := TableWidth
	h := TableHeight
	mid := w / 2

	pockets := []Pocket{
		{ID: 0, Position: NewVec2(0, 0), CaptureRadius: PocketRadius},
		{ID: 1, Position: NewVec2(mid, 0), CaptureRadius: PocketRadius},
		{ID: 2, Position: NewVec2(w, 0), CaptureRadius: PocketRadius},
		{ID: 3, Position: NewVec2(0, h), CaptureRadius: PocketRadius},
		{ID: 4, Position: NewVec2(mid, h), CaptureRadius: PocketRadius},
		{ID: 5, Position: NewVec2(w, h), CaptureRadius: PocketRadius},
	}

	// Wound with the playing area on the left so the inward normals come
	// out of NewSegment directly.
	segments := []Segment{
		NewSegment("top-baulk", NewVec2(cg, 0), NewVec2(mid-mg, 0)),
		NewSegment("top-spot", NewVec2(mid+mg, 0), NewVec2(w-cg, 0)),
		NewSegment("spot-end", NewVec2(w, cg), NewVec2(w, h-cg)),
		NewSegment("bottom-spot", NewVec2(w-cg, h), NewVec2(mid+mg, h)),
		NewSegment("bottom-baulk", NewVec2(mid-mg, h), NewVec2(cg, h)),
		NewSegment("baulk-end", NewVec2(0, h-cg), NewVec2(0, cg)),
	}

	dCenter := NewVec2(BaulkLineX, h/2)
	spots := map[Colour]Vec2{
		ColourYellow: NewVec2(BaulkLineX, h/2-DRadius),
		ColourGreen:  NewVec2(BaulkLineX, h/2+DRadius),
		ColourBrown:  dCenter,
		ColourBlue:   NewVec2(w/2, h/2),
		ColourPink:   NewVec2(w*0.75, h/2),
		ColourBlack:  NewVec2(161.8, h/2),
	}

	// Apex red sits one ball diameter plus clearance beyond the pink spot.
	apex := NewVec2(w*0.75+BallDiameter+0.6, h/2)

	return &Table{
		Segments: segments,
		Pockets:  pockets,
		Spots:    spots,
		DCenter:  dCenter,
		RedApex:  apex,
	}
}

// IsInDZone reports whether the point lies within the D: inside the
// semicircle on the baulk line, on the baulk side.
func (t *Table) IsInDZone(x, y float64) bool {
	if x > BaulkLineX {
		return false
	}
	return NewVec2(x, y).DistanceTo(t.DCenter) <= DRadius
}

// InBounds reports whether p is on the playing surface, expanded by margin.
func (t *Table) InBounds(p Vec2, margin float64) bool {
	return p.X >= -margin && p.X <= TableWidth+margin &&
		p.Y >= -margin && p.Y <= TableHeight+margin
}

// Centre returns the middle of the playing surface.
func (t *Table) Centre() Vec2 {
	return NewVec2(TableWidth/2, TableHeight/2)
}

// SpotFor returns the re-spot coordinate for a coloured ball.
func (t *Table) SpotFor(c Colour) (Vec2, bool) {
	p, ok := t.Spots[c]
	return p, ok
}
