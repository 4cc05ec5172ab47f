package game

// EventType tags an entry in the per-tick event stream.
type EventType string

const (
	EventBallCollision    EventType = "ball_collision"
	EventCushionCollision EventType = "cushion_collision"
	EventBallPotted       EventType = "ball_potted"
	EventShotTaken        EventType = "shot_taken"
)

// Event is one discrete occurrence reported by the engine. Consumers (rules,
// sound, broadcast) pick the fields relevant to the type; unused fields are
// zero.
type Event struct {
	Type    EventType `json:"type"`
	BallID  int       `json:"ball_id,omitempty"`
	OtherID int       `json:"other_id,omitempty"`
	Colour  Colour    `json:"colour,omitempty"`
	Speed   float64   `json:"speed,omitempty"`
	Power   float64   `json:"power,omitempty"`
}

// InvolvesCue reports whether the cue ball is a party to this event.
func (e Event) InvolvesCue() bool {
	return e.BallID == BallCue || (e.Type == EventBallCollision && e.OtherID == BallCue)
}
