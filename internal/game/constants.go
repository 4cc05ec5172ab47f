package game

// Table geometry and physics tuning for snooker.
// The table is 178x89 units (official 2:1 proportions) with the origin at the
// top-left corner pocket. All physics runs in these units; any on-screen
// scaling is the client's problem.

const (
	TableWidth  = 178.0
	TableHeight = 89.0

	BallRadius   = 2.5
	BallDiameter = 2 * BallRadius

	// Baulk end is the low-x side of the table.
	BaulkLineX = 44.5
	DRadius    = 14.5

	PocketRadius = 4.5
	// Cushion segments stop short of pocket mouths so collision geometry
	// never occludes an opening.
	CornerPocketGap = 5.2
	MiddlePocketGap = 4.6

	// Fixed simulation step. One tick per frame, wall-clock independent.
	Dt = 1.0 / 60.0

	// A step at MaxSpeed moves exactly one ball radius, which keeps a ball
	// from skipping a cushion segment within a single integration step.
	MaxSpeed = 150.0

	AirDrag      = 0.006 // per-tick multiplicative velocity decay
	RollFriction = 12.0  // units/s^2, constant-magnitude deceleration
	StopSpeed    = 0.05  // below this a ball is snapped to rest
	StopEpsilon  = 0.5   // end-of-shot "everything stopped" threshold

	BallRestitution    = 0.94
	CushionRestitution = 0.6

	// Bodies this far outside the cushions are treated as numerical
	// anomalies and reset to the table centre.
	EscapeMargin = 10.0

	// Pocket funnel: balls inside the attraction band get pulled toward the
	// pocket centre and bleed speed faster than cloth friction alone.
	PocketCaptureFactor = 0.85
	PocketAttractInner  = 0.3
	PocketAttractOuter  = 2.2
	PocketPullGain      = 6.0
	PocketFunnelDamping = 0.94

	// Shot controller.
	AimPickupRadius = 6.0
	PowerDivisor    = 12.0
	PowerExponent   = 1.5
	PowerScale      = 1.8
	MaxPower        = 30.0
	MinPower        = 1.0
	ForceScale      = 8.0

	// Rack placement.
	MinSeparation      = BallDiameter + 0.2
	SettleTicks        = 30
	RandomAllAttempts  = 100
	RandomRedsAttempts = 10000
)

// Ball identity: stable integer handles, never matched by name.
const (
	BallCue     = 0
	FirstRedID  = 1
	LastRedID   = 15
	BallYellow  = 16
	BallGreen   = 17
	BallBrown   = 18
	BallBlue    = 19
	BallPink    = 20
	BallBlack   = 21
	NumBalls    = 22
	NumReds     = 15
	NumColoured = 6
)
