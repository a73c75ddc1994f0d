package service

// Service is a long-lived subsystem started around the simulation: the loop, the feed server, audio
//
// Lifecycle:
//  1. Construction
//  2. Start() - acquire resources, launch goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources; must be idempotent
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	Start() error
	Stop() error
}

// Func adapts plain start/stop functions into a Service
type Func struct {
	ID       string
	Requires []string
	OnStart  func() error
	OnStop   func() error
}

func (f *Func) Name() string           { return f.ID }
func (f *Func) Dependencies() []string { return f.Requires }

func (f *Func) Start() error {
	if f.OnStart == nil {
		return nil
	}
	return f.OnStart()
}

func (f *Func) Stop() error {
	if f.OnStop == nil {
		return nil
	}
	return f.OnStop()
}
