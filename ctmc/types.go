// SPDX-License-Identifier: MIT

package ctmc

// Phase is the lifecycle of a Chain: Idle → Running → Finished.
type Phase int

const (
	// Idle is the phase after New. Silent jumps (burn-in) are allowed.
	Idle Phase = iota
	// Running is entered by Start. Advance is only legal here.
	Running
	// Finished is terminal; it is entered by Finish.
	Finished
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Cursor is the mutable position of a chain. Only the jump engine writes it;
// Time and the jump counters never decrease.
type Cursor struct {
	State   int     // currently occupied state
	Prev    int     // state before the most recent jump
	Time    float64 // current simulated time
	Entered float64 // time State was entered (most recent jump or origin)
	Jumps   int64   // measured jumps (Advance) so far
	Silent  int64   // silent jumps (JumpSilently) so far
}

// Step is one entry of a recorded trajectory: the chain entered State at
// Time, and it was the Jump-th measured jump (0 for the baseline entry).
type Step struct {
	State int
	Time  float64
	Jump  int64
}

// Event describes one measured jump as handed to observers.
type Event struct {
	Prev     int     // state left
	State    int     // state entered
	PrevTime float64 // time Prev was entered
	Time     float64 // time of this jump
	Jump     int64   // 1-based index of this jump
}

// Path is an in-memory trajectory: the baseline step recorded at Start,
// one step per measured jump, and the time at which the window closed.
type Path struct {
	Steps []Step
	End   float64
}

// Len returns the number of recorded steps.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Steps)
}

// At returns step i and whether it exists.
func (p *Path) At(i int) (Step, bool) {
	if p == nil || i < 0 || i >= len(p.Steps) {
		return Step{}, false
	}
	return p.Steps[i], true
}

// Observer receives every measured jump synchronously, on the goroutine that
// drives the chain. Implementations must not call back into the Chain.
type Observer interface {
	OnJump(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// OnJump calls f(ev).
func (f ObserverFunc) OnJump(ev Event) { f(ev) }

// Observers fans a jump out to several observers in order.
type Observers []Observer

// OnJump forwards ev to every observer.
func (os Observers) OnJump(ev Event) {
	for _, o := range os {
		o.OnJump(ev)
	}
}
