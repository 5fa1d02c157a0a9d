// Package nav owns the reading position: one page index and the clamped
// transitions that move it.
package nav

import "github.com/vanderheijden86/quire/pkg/debug"

// State is the reading position. Total is always at least 1 and Current is
// always in [0, Total-1].
type State struct {
	Current int
	Total   int
}

// NewState returns the starting state for a book of total pages.
func NewState(total int) State {
	if total < 1 {
		total = 1
	}
	return State{Current: 0, Total: total}
}

// Advance moves one page forward, staying put on the last page.
func Advance(s State) State {
	if s.Current < s.Total-1 {
		s.Current++
	}
	return s
}

// Retreat moves one page back, staying put on the first page.
func Retreat(s State) State {
	if s.Current > 0 {
		s.Current--
	}
	return s
}

// JumpToStart returns to the first page.
func JumpToStart(s State) State {
	s.Current = 0
	return s
}

// AtStart reports whether the first page is showing.
func (s State) AtStart() bool { return s.Current == 0 }

// AtEnd reports whether the last page is showing.
func (s State) AtEnd() bool { return s.Current == s.Total-1 }

// IsActive reports whether the page with the given id is the visible one.
func (s State) IsActive(id int) bool { return id == s.Current }

// Action is a navigation intent decoded from user input.
type Action int

const (
	ActionNone Action = iota
	ActionAdvance
	ActionRetreat
	ActionJumpToStart
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAdvance:
		return "advance"
	case ActionRetreat:
		return "retreat"
	case ActionJumpToStart:
		return "jump-to-start"
	}
	return "unknown"
}

// Apply runs the transition for a.
func Apply(s State, a Action) State {
	switch a {
	case ActionAdvance:
		return Advance(s)
	case ActionRetreat:
		return Retreat(s)
	case ActionJumpToStart:
		return JumpToStart(s)
	case ActionNone:
	}
	return s
}

// Controller holds the single mutable reading position.
type Controller struct {
	state State
}

// NewController starts at page 0 of a book with total pages.
func NewController(total int) *Controller {
	return &Controller{state: NewState(total)}
}

// State returns the current position.
func (c *Controller) State() State { return c.state }

// Current is shorthand for State().Current.
func (c *Controller) Current() int { return c.state.Current }

// Dispatch applies a and reports whether the position changed.
func (c *Controller) Dispatch(a Action) bool {
	prev := c.state
	c.state = Apply(prev, a)
	changed := c.state != prev
	debug.Logw("navigate", "action", a.String(), "from", prev.Current, "to", c.state.Current, "changed", changed)
	return changed
}

func (c *Controller) Advance() bool     { return c.Dispatch(ActionAdvance) }
func (c *Controller) Retreat() bool     { return c.Dispatch(ActionRetreat) }
func (c *Controller) JumpToStart() bool { return c.Dispatch(ActionJumpToStart) }
