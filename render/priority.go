package render

// RenderPriority determines render order. Lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityBeacon
	PriorityCurve
	PriorityTrail
	PriorityRing
	PriorityParticle
	PriorityDrone
	PriorityPlayer
	PriorityUI
)
