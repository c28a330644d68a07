package services

import (
	"sync"

	"github.com/amansgnr3001/studenthub/models"
)

type ScopeKind int

const (
	// ScopeStudent covers one student's records of one variant.
	ScopeStudent ScopeKind = iota
	// ScopePending covers the admin-wide pending queue.
	ScopePending
)

// Scope identifies the query a stream subscription keeps current.
type Scope struct {
	Kind      ScopeKind
	StudentID uint
	Variant   models.Variant
}

func StudentScope(studentID uint, variant models.Variant) Scope {
	return Scope{Kind: ScopeStudent, StudentID: studentID, Variant: variant}
}

func PendingScope() Scope {
	return Scope{Kind: ScopePending}
}

// Subscription is one session's handle on the bus. C carries coalesced change
// signals: a pending signal absorbs any published while it is unread.
type Subscription struct {
	C     chan struct{}
	scope Scope
	bus   *ChangeBus
}

// Close detaches the subscription from the bus. Safe to call once.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s)
}

// ChangeBus is the in-process publish/subscribe fan-out fed by the write
// path. Publishing never blocks: a subscriber that has not drained its signal
// simply keeps the one already queued.
type ChangeBus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewChangeBus() *ChangeBus {
	return &ChangeBus{subs: make(map[*Subscription]struct{})}
}

func (b *ChangeBus) Subscribe(scope Scope) *Subscription {
	sub := &Subscription{
		C:     make(chan struct{}, 1),
		scope: scope,
		bus:   b,
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

func (b *ChangeBus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

// SubmissionChanged signals every subscription whose scope covers a write to
// the given student's records of the given variant. Achievement kinds also
// touch the admin pending queue.
func (b *ChangeBus) SubmissionChanged(studentID uint, variant models.Variant) {
	touchesPending := variant.BreakdownKey() != ""

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		switch sub.scope.Kind {
		case ScopeStudent:
			if sub.scope.StudentID != studentID || sub.scope.Variant != variant {
				continue
			}
		case ScopePending:
			if !touchesPending {
				continue
			}
		}
		select {
		case sub.C <- struct{}{}:
		default:
		}
	}
}
