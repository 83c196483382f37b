package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"qadash/interfaces/web/presenters"
	"qadash/logging"
	"qadash/platform/notify"
)

// SSEClient represents a connected Server-Sent Events client. Broadcasts
// arrive from bus-handler goroutines and the keepalive loop concurrently;
// mu serializes writes so frames never interleave on the wire.
type SSEClient struct {
	id      string
	writer  http.ResponseWriter
	flusher http.Flusher
	done    chan struct{}

	mu       sync.Mutex
	lastSent time.Time
}

// SSEManager manages Server-Sent Events connections and real-time
// broadcasting: toast queue snapshots, report list refreshes and lot table
// refreshes.
type SSEManager struct {
	clients        map[string]*SSEClient
	mu             sync.RWMutex
	logger         *logging.Logger
	toastPresenter *presenters.ToastPresenter
	unsubscribe    func()
	closed         chan struct{}
}

// NewSSEManager creates an SSE connection manager subscribed to the toast
// center. Every queue change is pushed to connected clients as the full
// region fragment, so replace-in-place updates keep their screen position.
func NewSSEManager(appCtx context.Context, center *notify.ToastCenter) *SSEManager {
	manager := &SSEManager{
		clients:        make(map[string]*SSEClient),
		logger:         logging.Default().WithComponent("sse_manager"),
		toastPresenter: presenters.NewToastPresenter(),
		closed:         make(chan struct{}),
	}

	manager.unsubscribe = center.Subscribe(func(toasts []notify.Toast) {
		manager.broadcastToastRegion(toasts)
	})

	go manager.cleanupRoutine(appCtx)

	return manager
}

// AddClient adds a new SSE client connection.
func (s *SSEManager) AddClient(clientID string, w http.ResponseWriter) *SSEClient {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("Response writer does not support flushing")
		return nil
	}
	flusher.Flush()

	client := &SSEClient{
		id:       clientID,
		writer:   w,
		flusher:  flusher,
		done:     make(chan struct{}),
		lastSent: time.Now(),
	}

	s.mu.Lock()
	s.clients[clientID] = client
	total := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("SSE client connected", "client_id", clientID, "total_clients", total)
	s.sendToClient(client, "connected", fmt.Sprintf("Connected client %s", clientID))

	return client
}

// RemoveClient removes an SSE client connection.
func (s *SSEManager) RemoveClient(clientID string) {
	s.mu.Lock()
	client, exists := s.clients[clientID]
	if exists {
		delete(s.clients, clientID)
	}
	s.mu.Unlock()

	if exists {
		// Close channel outside of lock to prevent double-close panic
		select {
		case <-client.done:
		default:
			close(client.done)
		}
		s.logger.Info("SSE client disconnected", "client_id", clientID)
	}
}

// CloseAll tears down the manager: unsubscribes from the toast center and
// disconnects every client. Used at shutdown.
func (s *SSEManager) CloseAll() {
	select {
	case <-s.closed:
		return
	default:
		close(s.closed)
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	s.mu.Lock()
	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.RemoveClient(id)
	}
}

// broadcastToastRegion pushes the rendered toast region to all clients.
func (s *SSEManager) broadcastToastRegion(toasts []notify.Toast) {
	clientList := s.snapshotClients()
	if clientList == nil {
		return
	}

	html, err := s.toastPresenter.FormatToastRegion(toasts)
	if err != nil {
		s.logger.Error("Failed to format toast region", "error", err)
		return
	}
	// SSE data lines cannot contain raw newlines
	html = strings.ReplaceAll(html, "\n", "")

	failedClients := []string{}
	for clientID, client := range clientList {
		if err := s.sendToClient(client, "toasts", html); err != nil {
			s.logger.Warn("Failed to send toasts to client", "client_id", clientID, "error", err)
			failedClients = append(failedClients, clientID)
		}
	}
	for _, clientID := range failedClients {
		s.RemoveClient(clientID)
	}
}

// BroadcastReportListUpdate broadcasts that the report list has changed.
func (s *SSEManager) BroadcastReportListUpdate() {
	s.broadcastRefresh("reports-updated")
}

// BroadcastLotsUpdate broadcasts that the lots table has changed.
func (s *SSEManager) BroadcastLotsUpdate() {
	s.broadcastRefresh("lots-updated")
}

// NotifyReportUpdate implements application.UpdateNotifier.
func (s *SSEManager) NotifyReportUpdate() {
	s.BroadcastReportListUpdate()
}

func (s *SSEManager) broadcastRefresh(event string) {
	clientList := s.snapshotClients()
	if clientList == nil {
		s.logger.Debug("No SSE clients connected, skipping broadcast", "event", event)
		return
	}

	message := `{"action": "refresh", "timestamp": "` + time.Now().Format(time.RFC3339) + `"}`
	failedClients := []string{}
	successCount := 0

	for clientID, client := range clientList {
		if err := s.sendToClient(client, event, message); err != nil {
			s.logger.Warn("Failed to send update to client", "client_id", clientID, "event", event, "error", err)
			failedClients = append(failedClients, clientID)
		} else {
			successCount++
		}
	}
	for _, clientID := range failedClients {
		s.RemoveClient(clientID)
	}

	s.logger.Debug("Broadcasted update", "event", event, "successful", successCount, "failed", len(failedClients))
}

// snapshotClients copies the client map so I/O happens outside the lock.
// Returns nil when nobody is connected.
func (s *SSEManager) snapshotClients() map[string]*SSEClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.clients) == 0 {
		return nil
	}
	clientList := make(map[string]*SSEClient, len(s.clients))
	for id, client := range s.clients {
		clientList[id] = client
	}
	return clientList
}

// sendToClient sends an SSE message to a specific client.
func (s *SSEManager) sendToClient(client *SSEClient, event, data string) error {
	select {
	case <-client.done:
		return fmt.Errorf("client connection closed")
	default:
	}

	var message string
	if event == "keepalive" || event == "connected" {
		// Comments keep the connection warm without triggering HTMX swaps
		message = fmt.Sprintf(": %s\n\n", data)
	} else {
		message = fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)
	}

	client.mu.Lock()
	defer client.mu.Unlock()

	if _, err := client.writer.Write([]byte(message)); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	client.flusher.Flush()
	client.lastSent = time.Now()
	return nil
}

// sentBefore reports whether the client last saw traffic before t.
func (c *SSEClient) sentBefore(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSent.Before(t)
}

// SendKeepAlive sends keep-alive messages to all clients.
func (s *SSEManager) SendKeepAlive() {
	clientList := s.snapshotClients()
	failedClients := []string{}
	for clientID, client := range clientList {
		if err := s.sendToClient(client, "keepalive", `{"timestamp": "`+time.Now().Format(time.RFC3339)+`"}`); err != nil {
			s.logger.Debug("Keep-alive failed, removing client", "client_id", clientID)
			failedClients = append(failedClients, clientID)
		}
	}
	for _, clientID := range failedClients {
		s.RemoveClient(clientID)
	}
}

// cleanupRoutine periodically sends keep-alives and drops stale connections.
func (s *SSEManager) cleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case <-ticker.C:
		}

		s.SendKeepAlive()

		s.mu.RLock()
		staleThreshold := time.Now().Add(-2 * time.Minute)
		staleClients := []string{}
		for clientID, client := range s.clients {
			if client.sentBefore(staleThreshold) {
				staleClients = append(staleClients, clientID)
			}
		}
		s.mu.RUnlock()

		for _, clientID := range staleClients {
			s.logger.Info("Removing stale SSE client", "client_id", clientID)
			s.RemoveClient(clientID)
		}
	}
}

// HandleSSEConnection handles the SSE endpoint.
func (s *SSEManager) HandleSSEConnection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = fmt.Sprintf("client_%d", time.Now().UnixNano())
	}

	client := s.AddClient(clientID, w)
	if client == nil {
		http.Error(w, "Failed to establish SSE connection", http.StatusInternalServerError)
		return
	}

	select {
	case <-r.Context().Done():
		s.RemoveClient(clientID)
	case <-client.done:
		s.RemoveClient(clientID)
	}
}
