package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFastClient(baseURL string) *Client {
	client := New(baseURL)
	client.pollInterval = time.Millisecond
	return client
}

func TestClient_Login_StoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "qa@acme.test", creds["email"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1", "clientSlug": "acme"})
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	require.NoError(t, client.Login(context.Background(), "qa@acme.test", "secret"))
	assert.Equal(t, "acme", client.ClientSlug())
}

func TestClient_Login_BadCredentialsSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	err := client.Login(context.Background(), "qa@acme.test", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Invalid email or password")
}

func TestClient_PollReport_CompletesAfterRetries(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		status := "PROCESSING"
		if n >= 3 {
			status = "COMPLETED"
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "r-1", "status": status})
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	report, err := client.PollReport(context.Background(), "r-1")

	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", report.Status)
	assert.Equal(t, int64(3), calls.Load())
}

func TestClient_PollReport_FailedSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":           "r-2",
			"status":       "FAILED",
			"errorMessage": "upstream query failed",
		})
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	_, err := client.PollReport(context.Background(), "r-2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream query failed")
}

func TestClient_PollReport_BudgetExhausted(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"id": "r-3", "status": "PENDING"})
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	_, err := client.PollReport(context.Background(), "r-3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("%d attempts", PollAttempts))
	assert.Equal(t, int64(PollAttempts), calls.Load(), "Must stop exactly at the polling budget")
}

func TestClient_PollReport_ReadyCountsAsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "r-4", "status": "READY"})
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	report, err := client.PollReport(context.Background(), "r-4")

	require.NoError(t, err)
	assert.Equal(t, "READY", report.Status)
}

func TestClient_CreateReport_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/login" {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-9", "clientSlug": "acme"})
			return
		}

		assert.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{"id": "r-5", "status": "PENDING", "type": "lot_summary"})
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	require.NoError(t, client.Login(context.Background(), "qa@acme.test", "secret"))

	report, err := client.CreateReport(context.Background(), "lot_summary", nil)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", report.Status)
	assert.Equal(t, "r-5", report.ID)
}

func TestClient_DownloadReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("lot,defects\nL1,3\n"))
	}))
	defer server.Close()

	client := newFastClient(server.URL)
	content, err := client.DownloadReport(context.Background(), "r-6")

	require.NoError(t, err)
	assert.Equal(t, "lot,defects\nL1,3\n", string(content))
}
