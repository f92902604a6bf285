package engine

// Observer receives progress and status notifications while a run is
// in flight. Implementations bind the engine to a presentation layer
// (terminal, log file, GUI); the engine makes no assumption about
// which thread or event loop consumes the calls.
type Observer interface {
	// Progress reports overall completion in percent (0-100),
	// once per candidate.
	Progress(percent int)
	// Status reports the current human-readable action, including an
	// ETA estimate.
	Status(message string)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) Progress(int)  {}
func (NopObserver) Status(string) {}

// Funcs adapts two plain callbacks into an Observer. Nil functions
// are allowed and skipped.
type Funcs struct {
	OnProgress func(percent int)
	OnStatus   func(message string)
}

func (f Funcs) Progress(percent int) {
	if f.OnProgress != nil {
		f.OnProgress(percent)
	}
}

func (f Funcs) Status(message string) {
	if f.OnStatus != nil {
		f.OnStatus(message)
	}
}
