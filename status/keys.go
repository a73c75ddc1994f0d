package status

// Metric keys written by the simulation
const (
	KeyTicks        = "world.ticks"
	KeyGenerations  = "world.generations"
	KeyRings        = "world.rings"
	KeyDrones       = "world.drones"
	KeyNight        = "world.night"
	KeyMessage      = "status.message"
	KeyProgress     = "player.progress"
	KeyRemaining    = "player.remaining"
	KeyRounds       = "player.rounds"
	KeyStalled      = "player.stalled"
	KeyLookState    = "player.look"
	KeyFireActive   = "fire.active"
	KeyFireDropped  = "fire.dropped"
	KeyFireEnabled  = "fire.enabled"
	KeyClients      = "net.clients"
	KeyFramesSent   = "net.frames"
	KeyFramesLagged = "net.lagged"
)
