package game

import "log"

const (
	// MinFoulPenalty is the standard minimum foul award in the implemented
	// rule subset.
	MinFoulPenalty = 4
	// matchLogCap bounds the most-recent-first event log.
	matchLogCap = 32
)

// MatchEvent is one entry in the bounded, most-recent-first match log.
type MatchEvent struct {
	Kind    string `json:"kind"` // "pot", "foul", "turn", "break"
	Message string `json:"message"`
	Player  int    `json:"player"`
	Points  int    `json:"points,omitempty"`
}

// MatchState is the read-only scoring snapshot handed to clients.
type MatchState struct {
	Player1Score       int            `json:"player1_score"`
	Player2Score       int            `json:"player2_score"`
	CurrentPlayer      int            `json:"current_player"`
	CurrentBreak       int            `json:"current_break"`
	HighestBreak       int            `json:"highest_break"`
	TotalShots         int            `json:"total_shots"`
	SuccessfulShots    int            `json:"successful_shots"`
	Fouls              int            `json:"fouls"`
	PottedByColour     map[Colour]int `json:"potted_by_colour"`
	LastPottedColour   Colour         `json:"last_potted_colour,omitempty"`
	ConsecutiveColours int            `json:"consecutive_colours"`
	Log                []MatchEvent   `json:"log"`
}

// MatchRules is the snooker scoring and turn state machine. It consumes the
// engine's event stream once per tick in a fixed order (cue contacts, cue
// cushion hits, pots, end of shot) and never fails: invalid or duplicate
// inputs are no-ops, which keeps event delivery replay-safe.
type MatchRules struct {
	player1Score  int
	player2Score  int
	currentPlayer int // 1 or 2
	currentBreak  int
	highestBreak  int

	totalShots      int
	successfulShots int
	foulCount       int
	pottedByColour  map[Colour]int

	lastPottedColour   Colour
	consecutiveColours int

	// Per-shot state, valid between OnShotTaken and OnEndShot.
	shotActive      bool
	shotValid       bool
	ballsHitByCue   map[Colour]bool
	pottedThisShot  []Colour
	cushionHits     int
	cuePlacementDue bool

	events []MatchEvent
}

func NewMatchRules() *MatchRules {
	return &MatchRules{
		currentPlayer:  1,
		pottedByColour: make(map[Colour]int),
		ballsHitByCue:  make(map[Colour]bool),
	}
}

// CurrentPlayer returns the player (1 or 2) whose turn it is.
func (mr *MatchRules) CurrentPlayer() int {
	return mr.currentPlayer
}

// CuePlacementDue reports whether the cue ball must be re-placed in the D
// before the next shot.
func (mr *MatchRules) CuePlacementDue() bool {
	return mr.cuePlacementDue
}

// ClearCuePlacement acknowledges that the cue ball is back on the table.
func (mr *MatchRules) ClearCuePlacement() {
	mr.cuePlacementDue = false
}

// OnShotTaken opens a shot. Total shots count at shot start, not end.
func (mr *MatchRules) OnShotTaken(power float64) {
	mr.totalShots++
	mr.shotActive = true
	mr.shotValid = true
	mr.ballsHitByCue = make(map[Colour]bool)
	mr.pottedThisShot = nil
	mr.cushionHits = 0
}

// OnCueContact records the first-class colours the cue ball touched this
// shot. Idempotent per colour.
func (mr *MatchRules) OnCueContact(c Colour) {
	if !mr.shotActive || c == ColourWhite {
		return
	}
	mr.ballsHitByCue[c] = true
}

// OnCueCushion counts cushion contacts of the cue ball. Informational in the
// implemented subset; not a rule trigger.
func (mr *MatchRules) OnCueCushion() {
	if mr.shotActive {
		mr.cushionHits++
	}
}

// OnBallPotted scores one capture. Duplicate deliveries for the same ball
// are filtered upstream by the rack; the transitions here are pure.
func (mr *MatchRules) OnBallPotted(c Colour) {
	mr.pottedThisShot = append(mr.pottedThisShot, c)

	switch {
	case c == ColourWhite:
		mr.cuePlacementDue = true
		mr.RecordFoul("cue ball potted", MinFoulPenalty)

	case c == ColourRed:
		mr.consecutiveColours = 0
		mr.award(c.Points())
		mr.addToBreak(c.Points())
		mr.pottedByColour[c]++
		mr.lastPottedColour = c
		mr.pushEvent(MatchEvent{Kind: "pot", Message: "red potted", Player: mr.currentPlayer, Points: c.Points()})

	case c.IsColoured():
		mr.award(c.Points())
		mr.addToBreak(c.Points())
		mr.pottedByColour[c]++
		mr.pushEvent(MatchEvent{Kind: "pot", Message: string(c) + " potted", Player: mr.currentPlayer, Points: c.Points()})

		// Tracked across shots: a colour straight after a colour, with no
		// red in between, is out of sequence.
		if mr.lastPottedColour.IsColoured() {
			mr.consecutiveColours++
		} else {
			mr.consecutiveColours = 1
		}
		mr.lastPottedColour = c
		if mr.consecutiveColours >= 2 {
			// Points already awarded for the second colour are not
			// reversed in this rule subset.
			mr.RecordFoul("two consecutive coloured balls potted", MinFoulPenalty)
		}
	}
}

// OnEndShot closes a shot once every ball has come to rest. A shot that
// potted nothing hands the table over and ends the break; a clean shot with
// at least one pot keeps the striker on.
func (mr *MatchRules) OnEndShot() {
	if !mr.shotActive {
		return
	}
	mr.shotActive = false

	if !mr.shotValid {
		// Foul handling already reset the break and switched players.
		return
	}
	if len(mr.pottedThisShot) == 0 {
		mr.currentBreak = 0
		mr.switchPlayer("no pot")
		return
	}
	mr.successfulShots++
}

// RecordFoul awards at least the minimum penalty to the opponent of whoever
// is current when the foul is recorded, ends the break, invalidates the shot
// and switches players exactly once.
func (mr *MatchRules) RecordFoul(reason string, penalty int) {
	if penalty < MinFoulPenalty {
		penalty = MinFoulPenalty
	}
	mr.foulCount++
	mr.shotValid = false
	mr.currentBreak = 0

	offender := mr.currentPlayer
	if offender == 1 {
		mr.player2Score += penalty
	} else {
		mr.player1Score += penalty
	}
	mr.pushEvent(MatchEvent{Kind: "foul", Message: reason, Player: offender, Points: penalty})
	log.Printf("[RULES] foul by player %d: %s (+%d to opponent)", offender, reason, penalty)
	mr.switchPlayer("foul")
}

// Snapshot returns a copy of the visible match state.
func (mr *MatchRules) Snapshot() MatchState {
	potted := make(map[Colour]int, len(mr.pottedByColour))
	for c, n := range mr.pottedByColour {
		potted[c] = n
	}
	logCopy := make([]MatchEvent, len(mr.events))
	copy(logCopy, mr.events)
	return MatchState{
		Player1Score:       mr.player1Score,
		Player2Score:       mr.player2Score,
		CurrentPlayer:      mr.currentPlayer,
		CurrentBreak:       mr.currentBreak,
		HighestBreak:       mr.highestBreak,
		TotalShots:         mr.totalShots,
		SuccessfulShots:    mr.successfulShots,
		Fouls:              mr.foulCount,
		PottedByColour:     potted,
		LastPottedColour:   mr.lastPottedColour,
		ConsecutiveColours: mr.consecutiveColours,
		Log:                logCopy,
	}
}

func (mr *MatchRules) award(points int) {
	if mr.currentPlayer == 1 {
		mr.player1Score += points
	} else {
		mr.player2Score += points
	}
}

func (mr *MatchRules) addToBreak(points int) {
	mr.currentBreak += points
	if mr.currentBreak > mr.highestBreak {
		mr.highestBreak = mr.currentBreak
	}
}

func (mr *MatchRules) switchPlayer(why string) {
	if mr.currentPlayer == 1 {
		mr.currentPlayer = 2
	} else {
		mr.currentPlayer = 1
	}
	mr.pushEvent(MatchEvent{Kind: "turn", Message: why, Player: mr.currentPlayer})
}

// pushEvent prepends to the bounded most-recent-first log.
func (mr *MatchRules) pushEvent(e MatchEvent) {
	mr.events = append([]MatchEvent{e}, mr.events...)
	if len(mr.events) > matchLogCap {
		mr.events = mr.events[:matchLogCap]
	}
}
