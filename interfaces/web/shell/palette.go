package shell

import (
	"strings"
	"sync"
	"time"
)

// FilterCommands returns the items matching the query. A trimmed-empty query
// returns all items; otherwise an item matches when its label or description
// contains the query as a case-insensitive substring. Input order is
// preserved; there is no ranking.
func FilterCommands(items []CommandItem, query string) []CommandItem {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return items
	}

	needle := strings.ToLower(trimmed)
	matched := make([]CommandItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// FocusDelay is how long the palette waits after opening before requesting
// input focus, so the entry animation can begin first.
const FocusDelay = 50 * time.Millisecond

// Scheduler defers a callback and hands back a cancel func. The production
// implementation uses timers; tests substitute a synchronous one.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules callbacks on real timers.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// Palette is the command palette state machine: closed -> open on shortcut
// or explicit open, open -> closed on selection, escape or backdrop. The
// deferred focus request is a scheduled callback whose cancellation token is
// tied to the close transition, and the query resets on close.
type Palette struct {
	mu           sync.Mutex
	items        []CommandItem
	open         bool
	query        string
	scheduler    Scheduler
	cancelFocus  func()
	requestFocus func()
}

// NewPalette creates a closed palette over a static item list.
// requestFocus is invoked, deferred, after each open transition; it may be nil.
func NewPalette(items []CommandItem, scheduler Scheduler, requestFocus func()) *Palette {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	return &Palette{
		items:        items,
		scheduler:    scheduler,
		requestFocus: requestFocus,
	}
}

// Open transitions to open and schedules the deferred focus request.
// Opening an already-open palette is a no-op.
func (p *Palette) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return
	}
	p.open = true
	p.scheduleFocusLocked()
}

// Close transitions to closed, cancels any pending focus request and resets
// the query. Closing an already-closed palette is a no-op.
func (p *Palette) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

// Toggle flips the palette: the shortcut closes an open palette rather than
// being open-only.
func (p *Palette) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		p.closeLocked()
		return
	}
	p.open = true
	p.scheduleFocusLocked()
}

// Select closes the palette; the caller performs the navigation, which is
// fire-and-forget with no result to await.
func (p *Palette) Select(CommandItem) {
	p.Close()
}

// SetQuery updates the search query while open; ignored when closed.
func (p *Palette) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	p.query = query
}

// Query returns the current search query.
func (p *Palette) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// IsOpen reports the current state.
func (p *Palette) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Results returns the items matching the current query.
func (p *Palette) Results() []CommandItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return FilterCommands(p.items, p.query)
}

func (p *Palette) closeLocked() {
	if !p.open {
		return
	}
	p.open = false
	p.query = ""
	if p.cancelFocus != nil {
		p.cancelFocus()
		p.cancelFocus = nil
	}
}

func (p *Palette) scheduleFocusLocked() {
	if p.requestFocus == nil {
		return
	}
	if p.cancelFocus != nil {
		p.cancelFocus()
	}
	p.cancelFocus = p.scheduler.Schedule(FocusDelay, p.requestFocus)
}
