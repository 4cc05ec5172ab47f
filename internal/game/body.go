package game

// Body is a circular dynamic body in the physics world. Static geometry
// (cushions) is represented separately as Segments on the table.
type Body struct {
	ID       int     `json:"id"`
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Radius   float64 `json:"radius"`
	// Sensor bodies integrate but pass through everything. Used while a
	// fresh rack settles so tight initial contacts don't explode.
	Sensor bool `json:"sensor"`
}

// NewBallBody creates a stationary ball body at p.
func NewBallBody(id int, p Vec2) *Body {
	return &Body{
		ID:       id,
		Position: p,
		Radius:   BallRadius,
	}
}

// Segment is a static cushion wall with a precomputed inward normal.
type Segment struct {
	Name        string  `json:"name"`
	P1          Vec2    `json:"p1"`
	P2          Vec2    `json:"p2"`
	Direction   Vec2    `json:"direction"`
	Normal      Vec2    `json:"normal"` // points into the playing area
	Restitution float64 `json:"restitution"`
}

// NewSegment builds a cushion segment. The normal is the left normal of
// p1->p2, so segments are wound with the playing area on their left.
func NewSegment(name string, p1, p2 Vec2) Segment {
	dir := p2.Minus(p1).Normalize()
	return Segment{
		Name:        name,
		P1:          p1,
		P2:          p2,
		Direction:   dir,
		Normal:      dir.LeftNormal(),
		Restitution: CushionRestitution,
	}
}

// ClosestPoint returns the point on the segment nearest to p.
func (s Segment) ClosestPoint(p Vec2) Vec2 {
	ab := s.P2.Minus(s.P1)
	denom := ab.MagnitudeSquared()
	if denom == 0 {
		return s.P1
	}
	t := p.Minus(s.P1).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.P1.Plus(ab.Times(t))
}
