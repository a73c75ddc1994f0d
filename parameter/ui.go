package parameter

// Status Messages
const (
	StatusGenerating     = "GENERATING WORLD..."
	StatusTargetsFmt     = "TARGETS: %d"
	StatusRemainingFmt   = "TARGETS REMAINING: %d"
	StatusRoundComplete  = "ROUND COMPLETE"
	StatusNotEnoughRings = "ERROR: NOT ENOUGH RINGS"
)

// Ring State Colors (hex)
const (
	ColorInactive         = "#ffaa00"
	ColorActive           = "#0088ff"
	ColorActiveEmissive   = "#004488"
	ColorPassed           = "#ff0000"
	ColorPassedEmissive   = "#550000"
	ColorInactiveEmissive = "#000000"
)

// Beacon Look (night mode only)
const (
	BeaconOpacityInactive = 0.05
	BeaconScaleInactive   = 0.8
	BeaconOpacityActive   = 0.3
	BeaconScaleActive     = 1.2
	BeaconOpacityPassed   = 0.15
	BeaconScalePassed     = 1.0
)
