package playback

import "sync"

// State is the process-wide playback state.
type State int

const (
	Playing State = iota
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Controller owns the play/pause state machine. A single mutex couples the
// state flip, the clock freeze/resume and the decode gate swap, so a toggle
// can never leave the clock running while decoding is halted or vice versa
// (that race is what causes pause/resume clock drift).
type Controller struct {
	mu    sync.Mutex
	state State
	clock *Clock
	gate  chan struct{} // closed while playing
}

// NewController returns a controller in the Playing state driving clock.
func NewController(clock *Clock) *Controller {
	gate := make(chan struct{})
	close(gate)
	return &Controller{state: Playing, clock: clock, gate: gate}
}

// Toggle flips between Playing and Paused and returns the new state.
// Playing -> Paused freezes the clock and blocks the decode gate;
// Paused -> Playing resumes the clock and reopens the gate. After end of
// stream a toggle still flips state and clock; there is simply nothing
// left for the gate to release.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Playing {
		c.state = Paused
		c.clock.Pause()
		c.gate = make(chan struct{})
	} else {
		c.state = Playing
		c.clock.Resume()
		close(c.gate)
	}
	return c.state
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Gate returns a channel that is closed while playback runs. The decode
// loop receives from it before pulling the next packet, so pausing halts
// decoding without buffering ahead. Callers must re-fetch the gate on every
// iteration; it is replaced on each pause.
func (c *Controller) Gate() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate
}

// Clock returns the playback clock this controller drives.
func (c *Controller) Clock() *Clock {
	return c.clock
}
