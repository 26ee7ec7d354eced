package daemon

import "sync/atomic"

// State is the control loop's lifecycle state.
type State int32

const (
	Running State = iota
	ReloadPending
	Stopping
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ReloadPending:
		return "reload_pending"
	case Stopping:
		return "stopping"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Token carries stop and reload requests from any goroutine to the loop,
// which only reads it at checkpoints. A stop request always wins over a
// pending reload.
type Token struct {
	state atomic.Int32
	wake  chan struct{}
}

func NewToken() *Token {
	return &Token{wake: make(chan struct{}, 1)}
}

func (t *Token) State() State {
	return State(t.state.Load())
}

// RequestReload marks a reload for the next cycle. It has no effect once
// a stop has been requested.
func (t *Token) RequestReload() {
	if t.state.CompareAndSwap(int32(Running), int32(ReloadPending)) {
		t.notify()
	}
}

// RequestStop moves the token to Stopping unless it is already stopping
// or terminated.
func (t *Token) RequestStop() {
	for {
		cur := t.state.Load()
		if State(cur) >= Stopping {
			return
		}
		if t.state.CompareAndSwap(cur, int32(Stopping)) {
			t.notify()
			return
		}
	}
}

// Stopping reports whether a stop was requested or the loop has finished.
func (t *Token) Stopping() bool {
	return t.State() >= Stopping
}

// Wake is signalled whenever a request arrives.
func (t *Token) Wake() <-chan struct{} {
	return t.wake
}

// consumeReload clears a pending reload and reports whether there was one.
func (t *Token) consumeReload() bool {
	return t.state.CompareAndSwap(int32(ReloadPending), int32(Running))
}

func (t *Token) terminate() {
	t.state.Store(int32(Terminated))
	t.notify()
}

func (t *Token) notify() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}
