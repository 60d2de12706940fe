package queue

import (
	"errors"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// ErrItemNotFound is returned by Review when the id is not in the filtered queue.
var ErrItemNotFound = errors.New("item not in filtered queue")

// Mode is how the operator is looking at the queue.
type Mode string

const (
	ModeList   Mode = "list"
	ModeSingle Mode = "single"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeList || m == ModeSingle
}

// Signal is an informational event produced by a transition.
type Signal int

const (
	SignalNone Signal = iota
	// SignalEndOfQueue is raised when forward navigation wraps back to the first item.
	SignalEndOfQueue
)

// Controller is the review state machine. It is a value: every transition
// returns a new Controller and leaves the receiver untouched, so callers can
// swap state in a single assignment. The slices it holds are never written
// after construction.
type Controller struct {
	filters Filters
	mode    Mode
	source  []models.ContentItem
	items   []models.ContentItem
	index   int
}

// New builds a list-mode controller over the repository snapshot with default filters.
func New(source []models.ContentItem) Controller {
	c := Controller{filters: DefaultFilters(), mode: ModeList, source: source}
	c.items = Apply(source, c.filters)
	return c
}

func (c Controller) Filters() Filters { return c.filters }
func (c Controller) Mode() Mode       { return c.mode }
func (c Controller) Len() int         { return len(c.items) }
func (c Controller) Empty() bool      { return len(c.items) == 0 }

// Index returns the current position, or -1 when the queue is empty.
func (c Controller) Index() int {
	if c.Empty() {
		return -1
	}
	return c.index
}

// Current returns the item at the current position.
func (c Controller) Current() (models.ContentItem, bool) {
	if c.Empty() {
		return models.ContentItem{}, false
	}
	return c.items[c.index], true
}

// Items returns a copy of the filtered queue.
func (c Controller) Items() []models.ContentItem {
	out := make([]models.ContentItem, len(c.items))
	copy(out, c.items)
	return out
}

// Review switches to single mode positioned on id.
func (c Controller) Review(id string) (Controller, error) {
	idx := indexOf(c.items, id)
	if idx < 0 {
		return c, ErrItemNotFound
	}
	c.mode = ModeSingle
	c.index = idx
	return c, nil
}

// Next moves forward, wrapping to the first item with SignalEndOfQueue.
// It does nothing outside single mode or with fewer than two items.
func (c Controller) Next() (Controller, Signal) {
	if c.mode != ModeSingle || len(c.items) <= 1 {
		return c, SignalNone
	}
	if c.index < len(c.items)-1 {
		c.index++
		return c, SignalNone
	}
	c.index = 0
	return c, SignalEndOfQueue
}

// Previous moves back, wrapping silently to the last item.
// It does nothing outside single mode or with fewer than two items.
func (c Controller) Previous() Controller {
	if c.mode != ModeSingle || len(c.items) <= 1 {
		return c
	}
	if c.index > 0 {
		c.index--
	} else {
		c.index = len(c.items) - 1
	}
	return c
}

// SetFilters recomputes the queue for f. In single mode the position resets
// to the first item; in list mode it is only clamped.
func (c Controller) SetFilters(f Filters) Controller {
	c.filters = f
	c.items = Apply(c.source, f)
	if c.mode == ModeSingle {
		c.index = 0
	}
	c.index = clamp(c.index, len(c.items))
	return c
}

// SetMode toggles list/single, keeping the position when it is still valid.
func (c Controller) SetMode(m Mode) Controller {
	c.mode = m
	c.index = clamp(c.index, len(c.items))
	return c
}

// Resync recomputes the queue from a new repository snapshot. The current item
// keeps its place when it is still queued; otherwise the old index is clamped.
func (c Controller) Resync(source []models.ContentItem) Controller {
	current, had := c.Current()
	c.source = source
	c.items = Apply(source, c.filters)
	if had {
		if idx := indexOf(c.items, current.ID); idx >= 0 {
			c.index = idx
			return c
		}
	}
	c.index = clamp(c.index, len(c.items))
	return c
}

// AfterDecision applies a decision on id as one transition: the queue is
// recomputed from source, and if id was the item under review in single mode
// the position advances to its successor in the fresh ordering. Deciding the
// last item wraps to the first with SignalEndOfQueue; deciding the only item
// leaves an empty single-mode queue.
func (c Controller) AfterDecision(id string, source []models.ContentItem) (Controller, Signal) {
	decidedAt := indexOf(c.items, id)
	if c.mode != ModeSingle || decidedAt < 0 || decidedAt != c.index {
		return c.Resync(source), SignalNone
	}

	oldLen := len(c.items)
	var successor string
	if decidedAt < oldLen-1 {
		successor = c.items[decidedAt+1].ID
	}

	c.source = source
	c.items = Apply(source, c.filters)
	if len(c.items) == 0 {
		c.index = 0
		return c, SignalNone
	}

	if successor == "" {
		c.index = 0
		if oldLen >= 2 {
			return c, SignalEndOfQueue
		}
		return c, SignalNone
	}

	if idx := indexOf(c.items, successor); idx >= 0 {
		c.index = idx
	} else {
		c.index = clamp(decidedAt, len(c.items))
	}
	return c, SignalNone
}

// View is a read-only rendering of the controller.
type View struct {
	Filters      Filters              `json:"filters"`
	Mode         Mode                 `json:"mode"`
	Items        []models.ContentItem `json:"items"`
	CurrentIndex int                  `json:"currentIndex"`
	Current      *models.ContentItem  `json:"current,omitempty"`
	Total        int                  `json:"total"`
	Counts       TypeCounts           `json:"counts"`
	Empty        bool                 `json:"empty"`
	CanNavigate  bool                 `json:"canNavigate"`
	CanDecide    bool                 `json:"canDecide"`
}

// View renders the controller for display.
func (c Controller) View() View {
	v := View{
		Filters:      c.filters,
		Mode:         c.mode,
		Items:        c.Items(),
		CurrentIndex: c.Index(),
		Total:        len(c.items),
		Counts:       CountPending(c.source),
		Empty:        c.Empty(),
		CanDecide:    !c.Empty(),
		CanNavigate:  c.mode == ModeSingle && len(c.items) > 1,
	}
	if item, ok := c.Current(); ok && c.mode == ModeSingle {
		v.Current = &item
	}
	return v
}

func indexOf(items []models.ContentItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func clamp(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
