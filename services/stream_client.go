package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrNoCredential is surfaced when a stream client is started without a
// bearer token; no connection is attempted.
var ErrNoCredential = errors.New("authentication required: no bearer token")

// StreamState is what a stream client exposes to the rest of the program.
type StreamState struct {
	Documents []map[string]interface{}
	Loading   bool
	Live      bool
	Err       error
}

// StreamClient consumes one server-sent-event stream and keeps a local copy
// of the scope's collection. Each named data event replaces the collection
// wholesale. Transport failures reconnect with exponential backoff; a
// malformed payload surfaces an error but leaves the connection and the
// previous collection intact.
type StreamClient struct {
	HTTPClient  *http.Client
	BackoffBase time.Duration
	BackoffCap  time.Duration

	url   string
	token string

	mu       sync.Mutex
	state    StreamState
	onUpdate func(StreamState)
	closed   bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewStreamClient(url, token string) *StreamClient {
	return &StreamClient{
		HTTPClient:  http.DefaultClient,
		BackoffBase: time.Second,
		BackoffCap:  30 * time.Second,
		url:         url,
		token:       token,
		state:       StreamState{Loading: true},
	}
}

// OnUpdate registers a callback invoked after every state change.
func (c *StreamClient) OnUpdate(fn func(StreamState)) {
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

// State returns a copy of the current state.
func (c *StreamClient) State() StreamState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start opens the stream in the background. Without a token it records an
// authentication error and never connects.
func (c *StreamClient) Start() error {
	if c.token == "" {
		c.setState(func(st *StreamState) {
			st.Loading = false
			st.Err = ErrNoCredential
		})
		return ErrNoCredential
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx)
	return nil
}

// Close stops the client. No state updates happen after Close returns.
func (c *StreamClient) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
}

func (c *StreamClient) setState(mutate func(*StreamState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	mutate(&c.state)
	if c.onUpdate != nil {
		c.onUpdate(c.state)
	}
}

func (c *StreamClient) run(ctx context.Context) {
	defer close(c.done)

	backoff := c.BackoffBase
	for {
		stop := c.consume(ctx, &backoff)
		if stop || ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.BackoffCap {
			backoff = c.BackoffCap
		}
	}
}

// consume runs one connection attempt. It returns true when the client
// should stop for good (cancellation or a credential rejection).
func (c *StreamClient) consume(ctx context.Context, backoff *time.Duration) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.setState(func(st *StreamState) { st.Err = err; st.Loading = false })
		return true
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.setState(func(st *StreamState) {
			st.Live = false
			st.Err = fmt.Errorf("stream connection failed: %w", err)
		})
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.setState(func(st *StreamState) {
			st.Live = false
			st.Loading = false
			st.Err = fmt.Errorf("stream rejected: %s", resp.Status)
		})
		return true
	}
	if resp.StatusCode != http.StatusOK {
		c.setState(func(st *StreamState) {
			st.Live = false
			st.Err = fmt.Errorf("stream rejected: %s", resp.Status)
		})
		return false
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var event string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if event != "" && data.Len() > 0 {
				if c.apply(data.String()) {
					*backoff = c.BackoffBase
				}
			}
			event = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// heartbeat comment, nothing to apply
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}

	if ctx.Err() != nil {
		return true
	}
	err = scanner.Err()
	if err == nil {
		err = errors.New("stream closed by server")
	}
	c.setState(func(st *StreamState) {
		st.Live = false
		st.Err = fmt.Errorf("connection lost, retrying: %w", err)
	})
	return false
}

// apply parses one data event and replaces the collection. It reports
// whether the payload was usable.
func (c *StreamClient) apply(raw string) bool {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.setState(func(st *StreamState) {
			st.Err = fmt.Errorf("malformed stream payload: %w", err)
		})
		return false
	}

	items, ok := payload["documents"].([]interface{})
	if !ok {
		items, ok = payload["records"].([]interface{})
	}
	if !ok {
		c.setState(func(st *StreamState) {
			st.Err = errors.New("malformed stream payload: no documents")
		})
		return false
	}

	docs := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]interface{}); ok {
			docs = append(docs, m)
		}
	}

	c.setState(func(st *StreamState) {
		st.Documents = docs
		st.Loading = false
		st.Live = true
		st.Err = nil
	})
	return true
}
