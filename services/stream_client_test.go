package services

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// sseHandler scripts what each successive connection attempt serves.
type sseHandler struct {
	mu       sync.Mutex
	conns    int
	scripts  []func(w http.ResponseWriter, flush func())
	lastAuth string
}

func (h *sseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	idx := h.conns
	h.conns++
	h.lastAuth = r.Header.Get("Authorization")
	h.mu.Unlock()

	if idx >= len(h.scripts) {
		// Hold the connection open without sending anything further.
		<-r.Context().Done()
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	flusher := w.(http.Flusher)
	h.scripts[idx](w, flusher.Flush)
}

func (h *sseHandler) connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conns
}

func sendEvent(w http.ResponseWriter, flush func(), event, data string) {
	fmt.Fprintf(w, "event:%s\ndata:%s\n\n", event, data)
	flush()
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestStreamClientRequiresCredential(t *testing.T) {
	client := NewStreamClient("http://localhost/api/v1/stream/pending", "")
	if err := client.Start(); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
	st := client.State()
	if st.Loading || st.Live || !errors.Is(st.Err, ErrNoCredential) {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestStreamClientAppliesSnapshotsWholesale(t *testing.T) {
	handler := &sseHandler{
		scripts: []func(w http.ResponseWriter, flush func()){
			func(w http.ResponseWriter, flush func()) {
				sendEvent(w, flush, "skill-records",
					`{"message":"ok","totalCount":2,"documents":[{"skillname":"Python"},{"skillname":"Go"}]}`)
				sendEvent(w, flush, "skill-records",
					`{"message":"ok","totalCount":1,"documents":[{"skillname":"Go"}]}`)
				time.Sleep(50 * time.Millisecond)
			},
		},
	}
	srv := httptest.NewServer(handler)
	defer srv.Close()

	client := NewStreamClient(srv.URL, "token-abc")
	client.BackoffBase = 10 * time.Millisecond
	if err := client.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer client.Close()

	waitFor(t, func() bool {
		st := client.State()
		return st.Live && len(st.Documents) == 1
	}, "expected the second snapshot to replace the first wholesale")

	st := client.State()
	if st.Loading || st.Err != nil {
		t.Fatalf("unexpected state after snapshots: %+v", st)
	}
	if st.Documents[0]["skillname"] != "Go" {
		t.Fatalf("unexpected document: %+v", st.Documents[0])
	}

	handler.mu.Lock()
	auth := handler.lastAuth
	handler.mu.Unlock()
	if auth != "Bearer token-abc" {
		t.Fatalf("expected bearer credential, got %q", auth)
	}
}

func TestStreamClientKeepsStateOnMalformedPayload(t *testing.T) {
	proceed := make(chan struct{})
	handler := &sseHandler{
		scripts: []func(w http.ResponseWriter, flush func()){
			func(w http.ResponseWriter, flush func()) {
				sendEvent(w, flush, "skill-records", `{"documents":[{"skillname":"Python"}]}`)
				sendEvent(w, flush, "skill-records", `{not json`)
				<-proceed
				sendEvent(w, flush, "skill-records", `{"documents":[{"skillname":"Python"},{"skillname":"Go"}]}`)
				time.Sleep(50 * time.Millisecond)
			},
		},
	}
	srv := httptest.NewServer(handler)
	defer srv.Close()

	client := NewStreamClient(srv.URL, "token-abc")
	if err := client.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer client.Close()

	waitFor(t, func() bool {
		st := client.State()
		return st.Err != nil && len(st.Documents) == 1
	}, "expected a surfaced parse error with the prior collection intact")

	if handler.connections() != 1 {
		t.Fatalf("parse failure must not drop the connection, got %d connections", handler.connections())
	}

	// The following well-formed payload applies normally.
	close(proceed)
	waitFor(t, func() bool {
		st := client.State()
		return st.Err == nil && len(st.Documents) == 2
	}, "expected the next well-formed payload to be applied")
}

func TestStreamClientReconnectsWithBackoff(t *testing.T) {
	handler := &sseHandler{
		scripts: []func(w http.ResponseWriter, flush func()){
			func(w http.ResponseWriter, flush func()) {
				sendEvent(w, flush, "pending-documents", `{"documents":[{"variant":"skill"}]}`)
				// Connection drops after the first event.
			},
			func(w http.ResponseWriter, flush func()) {
				sendEvent(w, flush, "pending-documents", `{"documents":[{"variant":"skill"},{"variant":"placement"}]}`)
				time.Sleep(100 * time.Millisecond)
			},
		},
	}
	srv := httptest.NewServer(handler)
	defer srv.Close()

	client := NewStreamClient(srv.URL, "token-abc")
	client.BackoffBase = 10 * time.Millisecond
	if err := client.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer client.Close()

	waitFor(t, func() bool {
		st := client.State()
		return st.Live && len(st.Documents) == 2
	}, "expected the client to reconnect and apply the new snapshot")

	if handler.connections() < 2 {
		t.Fatalf("expected a reconnection, got %d connections", handler.connections())
	}
}

func TestStreamClientStopsOnCredentialRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewStreamClient(srv.URL, "wrong-token")
	client.BackoffBase = 5 * time.Millisecond
	if err := client.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer client.Close()

	waitFor(t, func() bool {
		st := client.State()
		return st.Err != nil && !st.Live && !st.Loading
	}, "expected a terminal access-denied state")
}

func TestStreamClientNoUpdatesAfterClose(t *testing.T) {
	handler := &sseHandler{
		scripts: []func(w http.ResponseWriter, flush func()){
			func(w http.ResponseWriter, flush func()) {
				sendEvent(w, flush, "skill-records", `{"documents":[]}`)
				time.Sleep(time.Second)
			},
		},
	}
	srv := httptest.NewServer(handler)
	defer srv.Close()

	client := NewStreamClient(srv.URL, "token-abc")
	if err := client.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	waitFor(t, func() bool { return client.State().Live }, "expected the stream to go live")

	var updatesAfterClose int
	client.OnUpdate(func(StreamState) { updatesAfterClose++ })
	client.Close()
	updatesAfterClose = 0

	time.Sleep(50 * time.Millisecond)
	if updatesAfterClose != 0 {
		t.Fatalf("expected no updates after Close, got %d", updatesAfterClose)
	}
}
