package services

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"
)

// SnapshotFunc produces the current payload for a session's scope.
type SnapshotFunc func() (map[string]interface{}, error)

// StreamSink receives what a session pushes. The SSE controller adapts one
// client connection into a sink; tests substitute their own.
type StreamSink interface {
	SendEvent(name string, payload interface{}) error
	SendComment(text string) error
}

// StreamSession drives one standing client connection: an immediate first
// snapshot, a fresh snapshot on every change signal and every refresh tick,
// and a periodic comment heartbeat so idle intermediaries keep the
// connection open. The session is one cancellable unit: Run returns, with
// all timers stopped, as soon as ctx is done or the sink fails.
type StreamSession struct {
	Event     string
	Snapshot  SnapshotFunc
	Changes   *Subscription
	Refresh   time.Duration
	Heartbeat time.Duration
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

// RefreshInterval is the fallback re-poll period for stream sessions.
func RefreshInterval() time.Duration {
	return envSeconds("STREAM_REFRESH_SECONDS", 5*time.Second)
}

// HeartbeatInterval is the keep-alive period for stream sessions.
func HeartbeatInterval() time.Duration {
	return envSeconds("STREAM_HEARTBEAT_SECONDS", 30*time.Second)
}

// Run blocks until the session ends. A snapshot failure is scoped to that
// tick: it is logged and the loop keeps going, so a transient store outage
// does not tear the stream down.
func (s *StreamSession) Run(ctx context.Context, sink StreamSink) {
	refresh := s.Refresh
	if refresh <= 0 {
		refresh = RefreshInterval()
	}
	heartbeat := s.Heartbeat
	if heartbeat <= 0 {
		heartbeat = HeartbeatInterval()
	}

	refreshTicker := time.NewTicker(refresh)
	defer refreshTicker.Stop()
	heartbeatTicker := time.NewTicker(heartbeat)
	defer heartbeatTicker.Stop()

	var changes <-chan struct{}
	if s.Changes != nil {
		changes = s.Changes.C
	}

	if !s.push(sink) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if !s.push(sink) {
				return
			}
		case <-refreshTicker.C:
			if !s.push(sink) {
				return
			}
		case <-heartbeatTicker.C:
			if err := sink.SendComment("ping"); err != nil {
				return
			}
		}
	}
}

// push computes and sends one snapshot; false means the sink is gone.
func (s *StreamSession) push(sink StreamSink) bool {
	payload, err := s.Snapshot()
	if err != nil {
		log.Printf("stream %s: snapshot failed, skipping tick: %v", s.Event, err)
		return true
	}
	if err := sink.SendEvent(s.Event, payload); err != nil {
		return false
	}
	return true
}
