package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"qadash/logging"
)

// ToastVariant selects the visual treatment of a toast.
type ToastVariant string

const (
	VariantDefault ToastVariant = "default"
	VariantSuccess ToastVariant = "success"
	VariantWarning ToastVariant = "warning"
	VariantDanger  ToastVariant = "danger"
)

// DefaultDuration is applied when a toast does not specify one.
const DefaultDuration = 5 * time.Second

// Toast is a transient notification. The center owns its lifetime entirely;
// renderers only hold snapshots.
type Toast struct {
	ID          string
	Title       string
	Description string
	ActionLabel string
	ActionHref  string
	Variant     ToastVariant
	Duration    time.Duration
}

type toastEntry struct {
	toast Toast
	timer *time.Timer
	gen   uint64
}

// Subscriber receives an ordered snapshot of the active queue after every change.
type Subscriber func([]Toast)

// ToastCenter is the process-wide toast queue. It is constructed once at
// application start, injected into everything that publishes notifications,
// and torn down through Close, which cancels every outstanding expiry timer.
//
// Republishing an existing id replaces the toast in place, keeping its
// original queue position: update-in-place toasts must not jump around
// the screen.
type ToastCenter struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*toastEntry
	subs    map[int]Subscriber
	nextSub int
	nextGen uint64
	closed  bool
	logger  *logging.Logger
}

// NewToastCenter creates an empty toast center.
func NewToastCenter() *ToastCenter {
	return &ToastCenter{
		entries: make(map[string]*toastEntry),
		subs:    make(map[int]Subscriber),
		logger:  logging.Default().WithComponent("toast_center"),
	}
}

// Publish queues a toast and returns its id, generating one when absent.
// A toast with a colliding id is replaced: its timer is cancelled, the new
// duration takes effect, and the queue position is preserved. Publish never
// fails; after Close it is a no-op.
func (c *ToastCenter) Publish(toast Toast) string {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return toast.ID
	}

	if toast.ID == "" {
		toast.ID = uuid.NewString()
	}
	if toast.Duration <= 0 {
		toast.Duration = DefaultDuration
	}
	if toast.Variant == "" {
		toast.Variant = VariantDefault
	}

	id := toast.ID
	if existing, ok := c.entries[id]; ok {
		existing.timer.Stop()
	} else {
		c.order = append(c.order, id)
	}

	// Each entry carries a generation so an already-fired timer waiting on
	// the lock cannot remove the entry that replaced its own.
	gen := c.nextGen
	c.nextGen++
	entry := &toastEntry{toast: toast, gen: gen}
	entry.timer = time.AfterFunc(toast.Duration, func() { c.expire(id, gen) })
	c.entries[id] = entry

	snapshot := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	c.logger.Debug("Toast published", "toast_id", id, "variant", string(toast.Variant))
	notify(subs, snapshot)
	return id
}

// Dismiss removes a toast and cancels its expiry timer. Unknown ids are a
// defined no-op.
func (c *ToastCenter) Dismiss(id string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if !c.removeLocked(id) {
		c.mu.Unlock()
		return
	}
	snapshot := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	c.logger.Debug("Toast dismissed", "toast_id", id)
	notify(subs, snapshot)
}

// expire is the timer path; it performs the same removal as Dismiss, but
// only while the entry it was scheduled for is still current. A republish
// bumps the generation, turning the stale expiry into a no-op.
func (c *ToastCenter) expire(id string, gen uint64) {
	c.mu.Lock()
	entry, ok := c.entries[id]
	if c.closed || !ok || entry.gen != gen {
		c.mu.Unlock()
		return
	}
	if !c.removeLocked(id) {
		c.mu.Unlock()
		return
	}
	snapshot := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, snapshot)
}

// Active returns the ordered snapshot of queued toasts.
func (c *ToastCenter) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers a change listener and returns its unsubscribe func.
// The listener is invoked with a queue snapshot after every mutation.
func (c *ToastCenter) Subscribe(fn Subscriber) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Close cancels every outstanding timer and drops all subscribers. All
// subsequent operations are no-ops. Safe to call more than once.
func (c *ToastCenter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	for _, entry := range c.entries {
		entry.timer.Stop()
	}
	c.entries = make(map[string]*toastEntry)
	c.order = nil
	c.subs = make(map[int]Subscriber)

	c.logger.Debug("Toast center closed")
}

// removeLocked drops a toast from the queue. Caller holds the lock.
func (c *ToastCenter) removeLocked(id string) bool {
	entry, ok := c.entries[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(c.entries, id)
	for i, queued := range c.order {
		if queued == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// snapshotLocked copies the queue in display order. Caller holds the lock.
func (c *ToastCenter) snapshotLocked() []Toast {
	snapshot := make([]Toast, 0, len(c.order))
	for _, id := range c.order {
		if entry, ok := c.entries[id]; ok {
			snapshot = append(snapshot, entry.toast)
		}
	}
	return snapshot
}

// subscribersLocked copies the subscriber list. Caller holds the lock.
func (c *ToastCenter) subscribersLocked() []Subscriber {
	subs := make([]Subscriber, 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

// notify runs outside the lock so a subscriber can call back into the center.
func notify(subs []Subscriber, snapshot []Toast) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
