package parameter

// Fire Particle Pool
const (
	// FirePoolCapacity is the fixed slot count per ring
	FirePoolCapacity = 200

	// FireSpawnDay/Night are particles requested per tick while enabled
	FireSpawnDay   = 5
	FireSpawnNight = 8

	// FireLifeMin/Max bound particle lifetime (seconds)
	FireLifeMin = 0.8
	FireLifeMax = 1.5

	// FireThickness is the random spread across the ring plane at spawn
	FireThickness = 0.3

	// FireRiseMin/Max bound the initial upward velocity (units/sec)
	FireRiseMin = 1.5
	FireRiseMax = 3.5

	// FireSpreadMin/Max bound the lateral jitter amplitude at spawn
	FireSpreadMin = 0.5
	FireSpreadMax = 2.0

	// FireOutward is the fraction of the circumference offset added as outward velocity
	FireOutward = 0.1

	// FireGravity is downward acceleration (units/sec²)
	FireGravity = 0.5

	// FireTurbulence is the lateral random acceleration amplitude (units/sec²)
	FireTurbulence = 2.0

	// FireDamping is the per-tick velocity retention factor
	FireDamping = 0.98

	// FireEmissiveDay/Night are glow multipliers handed to the renderer
	FireEmissiveDay   = 2.0
	FireEmissiveNight = 3.0
)

// Trail Ribbon
const (
	// TrailPoints is the history length per drone
	TrailPoints = 20

	// TrailWidth is the half-width of the ribbon at its head
	TrailWidth = 0.4

	// TrailOpacityDay/Night are ribbon opacities
	TrailOpacityDay   = 0.4
	TrailOpacityNight = 0.8
)
