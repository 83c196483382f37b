package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeIDs(c *ToastCenter) []string {
	toasts := c.Active()
	ids := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		ids = append(ids, toast.ID)
	}
	return ids
}

func TestToastCenter_PublishAssignsDefaults(t *testing.T) {
	center := NewToastCenter()
	defer center.Close()

	id := center.Publish(Toast{Title: "Saved"})

	require.NotEmpty(t, id)
	toasts := center.Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, DefaultDuration, toasts[0].Duration)
	assert.Equal(t, VariantDefault, toasts[0].Variant)
}

func TestToastCenter_VisibleSetEqualsPublishedMinusDismissed(t *testing.T) {
	center := NewToastCenter()
	defer center.Close()

	center.Publish(Toast{ID: "a", Duration: time.Minute})
	center.Publish(Toast{ID: "b", Duration: time.Minute})
	center.Publish(Toast{ID: "c", Duration: time.Minute})
	assert.Equal(t, []string{"a", "b", "c"}, activeIDs(center))

	center.Dismiss("b")
	assert.Equal(t, []string{"a", "c"}, activeIDs(center))

	// Dismissing an unknown id is a defined no-op
	center.Dismiss("nope")
	assert.Equal(t, []string{"a", "c"}, activeIDs(center))
}

func TestToastCenter_RepublishPreservesPositionWithoutDuplicates(t *testing.T) {
	center := NewToastCenter()
	defer center.Close()

	center.Publish(Toast{ID: "a", Title: "first", Duration: time.Minute})
	center.Publish(Toast{ID: "b", Duration: time.Minute})
	center.Publish(Toast{ID: "a", Title: "updated", Duration: time.Minute})

	assert.Equal(t, []string{"a", "b"}, activeIDs(center))
	assert.Equal(t, "updated", center.Active()[0].Title)
}

func TestToastCenter_RepublishCancelsPreviousTimer(t *testing.T) {
	center := NewToastCenter()
	defer center.Close()

	center.Publish(Toast{ID: "job", Duration: 100 * time.Millisecond})
	time.Sleep(50 * time.Millisecond)
	center.Publish(Toast{ID: "job", Duration: 5 * time.Second})

	// Past the original expiry: the replacement's timer governs now
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{"job"}, activeIDs(center))
}

func TestToastCenter_StaleExpiryCannotRemoveRepublishedToast(t *testing.T) {
	center := NewToastCenter()
	defer center.Close()

	center.Publish(Toast{ID: "x", Duration: time.Hour})
	center.Publish(Toast{ID: "x", Duration: time.Hour})

	// A fired timer can lose the race for the lock against a republish of
	// the same id. Its expiry carries the old generation and must not touch
	// the replacement entry.
	center.expire("x", 0)
	assert.Equal(t, []string{"x"}, activeIDs(center))

	// The live generation still expires normally
	center.expire("x", 1)
	assert.Empty(t, activeIDs(center))
}

func TestToastCenter_RepublishAtExpiryBoundaryKeepsToast(t *testing.T) {
	for i := 0; i < 20; i++ {
		center := NewToastCenter()

		center.Publish(Toast{ID: "x", Duration: time.Millisecond})
		time.Sleep(time.Millisecond)
		center.Publish(Toast{ID: "x", Duration: 10 * time.Second})

		// Whichever way the expiry and republish interleaved, the 10s
		// republish governs now
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, []string{"x"}, activeIDs(center), "iteration %d", i)
		center.Close()
	}
}

func TestToastCenter_TimerExpiryRemovesToast(t *testing.T) {
	center := NewToastCenter()
	defer center.Close()

	expired := make(chan []Toast, 4)
	center.Subscribe(func(snapshot []Toast) {
		expired <- snapshot
	})

	center.Publish(Toast{ID: "short", Duration: 30 * time.Millisecond})

	require.Eventually(t, func() bool {
		return len(center.Active()) == 0
	}, time.Second, 10*time.Millisecond)

	// Publish then expiry both notified subscribers
	assert.GreaterOrEqual(t, len(expired), 2)
}

func TestToastCenter_SubscribeAndUnsubscribe(t *testing.T) {
	center := NewToastCenter()
	defer center.Close()

	var mu sync.Mutex
	calls := 0
	unsubscribe := center.Subscribe(func([]Toast) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	center.Publish(Toast{ID: "a", Duration: time.Minute})
	unsubscribe()
	center.Publish(Toast{ID: "b", Duration: time.Minute})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestToastCenter_CloseCancelsTimersAndDisablesOperations(t *testing.T) {
	center := NewToastCenter()

	center.Publish(Toast{ID: "a", Duration: 50 * time.Millisecond})
	center.Close()

	// Publish after close is a no-op
	center.Publish(Toast{ID: "late", Duration: time.Minute})
	assert.Empty(t, center.Active())

	// Close is idempotent
	center.Close()

	// Any dangling timer callback must not resurrect state
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, center.Active())
}
