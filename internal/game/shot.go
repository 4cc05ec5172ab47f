package game

import "math"

// ShotController turns a drag gesture into a cue-ball impulse. It is a small
// state machine: Idle -> Aiming -> Idle. The drag anchor is the cue ball's
// position at aim start; power grows super-linearly with pull-back distance
// so a long deliberate drag hits disproportionately harder than jitter. The
// ball is driven toward the cursor, not away from it.
type ShotController struct {
	aiming bool
	anchor Vec2
	cursor Vec2
}

func NewShotController() *ShotController {
	return &ShotController{}
}

// Aiming reports whether a drag is in progress.
func (sc *ShotController) Aiming() bool {
	return sc.aiming
}

// StartAim begins a drag if the point is within pickup range of the cue
// ball. Returns whether aiming started.
func (sc *ShotController) StartAim(point, cuePosition Vec2) bool {
	if sc.aiming {
		return false
	}
	if point.DistanceTo(cuePosition) > AimPickupRadius {
		return false
	}
	sc.aiming = true
	sc.anchor = cuePosition
	sc.cursor = point
	return true
}

// UpdateAim moves the drag cursor. Ignored outside of an active aim.
func (sc *ShotController) UpdateAim(point Vec2) {
	if !sc.aiming {
		return
	}
	sc.cursor = point
}

// Power is the shot strength derived from the current drag distance,
// clamped to [0, MaxPower].
func (sc *ShotController) Power() float64 {
	if !sc.aiming {
		return 0
	}
	d := sc.anchor.DistanceTo(sc.cursor)
	p := math.Pow(d/PowerDivisor, PowerExponent) * PowerScale
	if p > MaxPower {
		p = MaxPower
	}
	return p
}

// Release ends the drag. A drag below the minimum power is a cancel: no
// impulse, ok is false. The transient aim state is cleared either way.
func (sc *ShotController) Release() (direction Vec2, power float64, ok bool) {
	if !sc.aiming {
		return Vec2{}, 0, false
	}
	power = sc.Power()
	direction = sc.cursor.Minus(sc.anchor).Normalize()
	sc.Reset()
	if power < MinPower || direction.IsZero() {
		return Vec2{}, 0, false
	}
	return direction, power, true
}

// Reset cancels any aim in progress unconditionally.
func (sc *ShotController) Reset() {
	sc.aiming = false
	sc.anchor = Vec2{}
	sc.cursor = Vec2{}
}

// View returns the aim snapshot for aim-line and power-bar rendering.
func (sc *ShotController) View() ShotView {
	return ShotView{
		Aiming:  sc.aiming,
		AnchorX: sc.anchor.X,
		AnchorY: sc.anchor.Y,
		CursorX: sc.cursor.X,
		CursorY: sc.cursor.Y,
		Power:   sc.Power(),
	}
}
