package game

// Colour classifies a ball for scoring.
type Colour string

const (
	ColourWhite  Colour = "white"
	ColourRed    Colour = "red"
	ColourYellow Colour = "yellow"
	ColourGreen  Colour = "green"
	ColourBrown  Colour = "brown"
	ColourBlue   Colour = "blue"
	ColourPink   Colour = "pink"
	ColourBlack  Colour = "black"
)

// Points returns the snooker point value of potting this colour.
// The white has no value; potting it is a foul.
func (c Colour) Points() int {
	switch c {
	case ColourRed:
		return 1
	case ColourYellow:
		return 2
	case ColourGreen:
		return 3
	case ColourBrown:
		return 4
	case ColourBlue:
		return 5
	case ColourPink:
		return 6
	case ColourBlack:
		return 7
	}
	return 0
}

// IsColoured reports whether this is one of the six spotted colours
// (not a red, not the cue ball).
func (c Colour) IsColoured() bool {
	switch c {
	case ColourYellow, ColourGreen, ColourBrown, ColourBlue, ColourPink, ColourBlack:
		return true
	}
	return false
}

// ColourOfBall maps a ball handle to its colour class.
func ColourOfBall(id int) Colour {
	switch {
	case id == BallCue:
		return ColourWhite
	case id >= FirstRedID && id <= LastRedID:
		return ColourRed
	case id == BallYellow:
		return ColourYellow
	case id == BallGreen:
		return ColourGreen
	case id == BallBrown:
		return ColourBrown
	case id == BallBlue:
		return ColourBlue
	case id == BallPink:
		return ColourPink
	case id == BallBlack:
		return ColourBlack
	}
	return ""
}

// LayoutMode selects how a frame is racked.
type LayoutMode string

const (
	LayoutStandard   LayoutMode = "STANDARD"
	LayoutRandomReds LayoutMode = "RANDOM_REDS"
	LayoutRandomAll  LayoutMode = "RANDOM_ALL"
)

// MatchStatus represents the lifecycle of an online match.
type MatchStatus string

const (
	StatusWaiting    MatchStatus = "WAITING"
	StatusInProgress MatchStatus = "IN_PROGRESS"
	StatusCompleted  MatchStatus = "COMPLETED"
	StatusCancelled  MatchStatus = "CANCELLED"
)

// BallView is the read-only per-ball snapshot handed to clients.
type BallView struct {
	ID     int     `json:"id"`
	Colour Colour  `json:"colour"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Potted bool    `json:"potted"`
}

// ShotView exposes the transient aiming state for aim-line rendering.
type ShotView struct {
	Aiming  bool    `json:"aiming"`
	AnchorX float64 `json:"anchor_x"`
	AnchorY float64 `json:"anchor_y"`
	CursorX float64 `json:"cursor_x"`
	CursorY float64 `json:"cursor_y"`
	Power   float64 `json:"power"`
}
