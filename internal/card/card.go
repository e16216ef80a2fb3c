// Package card implements the swipe-to-delete gesture of a feed entry as a
// state machine. Rendering reads View, which depends only on the card state.
package card

import (
	"math"
	"time"
)

// State is the gesture state of a card.
type State int

const (
	Idle State = iota
	Dragging
	Deleting
	Deleted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Deleting:
		return "deleting"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Stage is the phase of the delete animation.
type Stage int

const (
	StageNone Stage = iota
	StageSlideOut
	StageFadeOut
)

const (
	// Deadband is the horizontal distance a drag must cover before the card
	// starts following it.
	Deadband = 5.0
	// DeleteThreshold is the leftward distance past which a release deletes.
	DeleteThreshold = 100.0

	DefaultWidth = 400.0

	SlideOutDuration = 250 * time.Millisecond
	FadeOutDuration  = 200 * time.Millisecond

	fadedScale = 0.8
)

// Callbacks are invoked on the transitions that touch the feed. Nil entries
// are skipped.
type Callbacks struct {
	OnOpen         func(id string)
	OnMarkAsRead   func(id string)
	OnMarkAsUnread func(id string)
	OnDelete       func(id string)
}

// View is the visual state of a card.
type View struct {
	Offset  float64
	Opacity float64
	Scale   float64
}

// Card is one feed entry's gesture state.
type Card struct {
	id    string
	read  bool
	width float64
	cb    Callbacks

	state   State
	stage   Stage
	dx      float64
	from    float64
	elapsed time.Duration
}

// New returns an idle card. A width <= 0 means DefaultWidth.
func New(id string, read bool, width float64, cb Callbacks) *Card {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Card{id: id, read: read, width: width, cb: cb}
}

func (c *Card) ID() string     { return c.id }
func (c *Card) Read() bool     { return c.read }
func (c *Card) State() State   { return c.state }
func (c *Card) Stage() Stage   { return c.stage }
func (c *Card) Width() float64 { return c.width }

// SetRead syncs the read flag from the feed without firing callbacks.
func (c *Card) SetRead(read bool) { c.read = read }

// DragMove reports the cumulative horizontal displacement of the current
// drag. Displacements inside the deadband leave an idle card untouched.
func (c *Card) DragMove(dx float64) {
	switch c.state {
	case Idle:
		if math.Abs(dx) < Deadband {
			return
		}
		c.state = Dragging
		c.dx = dx
	case Dragging:
		c.dx = dx
	}
}

// Release ends the drag. Past the threshold the card starts deleting,
// otherwise it snaps back.
func (c *Card) Release() {
	if c.state != Dragging {
		return
	}
	if c.dx < -DeleteThreshold {
		c.from = c.offset()
		c.state = Deleting
		c.stage = StageSlideOut
		c.elapsed = 0
		return
	}
	c.reset()
}

// Cancel abandons a drag without deleting.
func (c *Card) Cancel() {
	if c.state == Dragging {
		c.reset()
	}
}

func (c *Card) reset() {
	c.state = Idle
	c.stage = StageNone
	c.dx = 0
	c.elapsed = 0
}

// Step advances the delete animation by d. It reports whether the card has
// reached Deleted; OnDelete fires on that transition only.
func (c *Card) Step(d time.Duration) bool {
	if c.state != Deleting {
		return c.state == Deleted
	}
	c.elapsed += d
	if c.stage == StageSlideOut {
		if c.elapsed < SlideOutDuration {
			return false
		}
		c.elapsed -= SlideOutDuration
		c.stage = StageFadeOut
	}
	if c.elapsed < FadeOutDuration {
		return false
	}
	c.state = Deleted
	c.stage = StageNone
	c.elapsed = 0
	if c.cb.OnDelete != nil {
		c.cb.OnDelete(c.id)
	}
	return true
}

// Settle runs any pending animation to completion.
func (c *Card) Settle() {
	if c.state == Deleting {
		c.Step(SlideOutDuration + FadeOutDuration)
	}
}

// Tap handles a tap on the card body. Only an idle card responds: an unread
// card is marked read first, then opened.
func (c *Card) Tap() {
	if c.state != Idle {
		return
	}
	if !c.read {
		c.read = true
		if c.cb.OnMarkAsRead != nil {
			c.cb.OnMarkAsRead(c.id)
		}
	}
	if c.cb.OnOpen != nil {
		c.cb.OnOpen(c.id)
	}
}

// ToggleRead handles a tap on the read toggle. It never opens the card.
func (c *Card) ToggleRead() {
	if c.state == Deleting || c.state == Deleted {
		return
	}
	c.read = !c.read
	fn := c.cb.OnMarkAsUnread
	if c.read {
		fn = c.cb.OnMarkAsRead
	}
	if fn != nil {
		fn(c.id)
	}
}

func (c *Card) offset() float64 {
	return math.Min(c.dx, 0)
}

// View returns the visual state for the current gesture state.
func (c *Card) View() View {
	switch c.state {
	case Dragging:
		return View{Offset: c.offset(), Opacity: 1, Scale: 1}
	case Deleting:
		if c.stage == StageSlideOut {
			p := progress(c.elapsed, SlideOutDuration)
			return View{Offset: c.from + (-c.width-c.from)*p, Opacity: 1, Scale: 1}
		}
		p := progress(c.elapsed, FadeOutDuration)
		return View{Offset: -c.width, Opacity: 1 - p, Scale: 1 - (1-fadedScale)*p}
	case Deleted:
		return View{Offset: -c.width, Opacity: 0, Scale: fadedScale}
	default:
		return View{Offset: 0, Opacity: 1, Scale: 1}
	}
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 || elapsed >= total {
		return 1
	}
	return float64(elapsed) / float64(total)
}
