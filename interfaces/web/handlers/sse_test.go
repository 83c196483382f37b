package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qadash/platform/notify"
)

// frameRecorder captures SSE writes and flags any overlapping Write calls.
type frameRecorder struct {
	mu      sync.Mutex
	frames  []string
	writing int32
	overlap int32
}

func (f *frameRecorder) Write(p []byte) (int, error) {
	if !atomic.CompareAndSwapInt32(&f.writing, 0, 1) {
		atomic.StoreInt32(&f.overlap, 1)
	}
	// Widen the window so unserialized writers would collide
	time.Sleep(time.Millisecond)
	f.mu.Lock()
	f.frames = append(f.frames, string(p))
	f.mu.Unlock()
	atomic.StoreInt32(&f.writing, 0)
	return len(p), nil
}

func (f *frameRecorder) Header() http.Header  { return http.Header{} }
func (f *frameRecorder) WriteHeader(code int) {}
func (f *frameRecorder) Flush()               {}

func (f *frameRecorder) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.frames...)
}

func TestSSEManager_ConcurrentBroadcastsDoNotInterleaveFrames(t *testing.T) {
	center := notify.NewToastCenter()
	defer center.Close()
	manager := NewSSEManager(context.Background(), center)
	defer manager.CloseAll()

	recorder := &frameRecorder{}
	client := manager.AddClient("c1", recorder)
	require.NotNil(t, client)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.BroadcastLotsUpdate()
			manager.BroadcastReportListUpdate()
			manager.SendKeepAlive()
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&recorder.overlap), "writes must be serialized per client")
	for _, frame := range recorder.snapshot() {
		// Every write is one whole frame: a comment line or event+data
		assert.True(t, strings.HasSuffix(frame, "\n\n"), "partial frame written: %q", frame)
		if !strings.HasPrefix(frame, ": ") {
			assert.Contains(t, frame, "event: ")
			assert.Contains(t, frame, "data: ")
		}
	}
}
