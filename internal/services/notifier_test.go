package services

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/personality-assessment/internal/models"
)

type stubSubscriber struct {
	mu         sync.Mutex
	messages   [][]byte
	failWrites bool
	stall      bool
	deadline   time.Time
	closed     bool
}

func (s *stubSubscriber) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	stall := s.stall
	deadline := s.deadline
	failWrites := s.failWrites
	s.mu.Unlock()

	// A stalled peer blocks until the write deadline expires, like a full
	// TCP send buffer would.
	if stall {
		time.Sleep(time.Until(deadline))
		return errors.New("i/o timeout")
	}
	if failWrites {
		return errors.New("write on closed connection")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, append([]byte(nil), data...))
	return nil
}

func (s *stubSubscriber) SetWriteDeadline(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadline = t
	return nil
}

func (s *stubSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubSubscriber) received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *stubSubscriber) lastMessage() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return nil
	}
	return s.messages[len(s.messages)-1]
}

func (s *stubSubscriber) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func testEvent() models.TraitScoreEvent {
	return models.NewCandidateEvent("Ada", "ada@example.com", models.DefaultTraitScores())
}

func TestNotifierBroadcastWithoutSubscribers(t *testing.T) {
	n := NewNotifier()
	n.Start()
	defer n.Stop()

	n.Broadcast(testEvent())

	assert.Equal(t, 0, n.Count())
}

func TestNotifierBroadcastDeliversToAll(t *testing.T) {
	n := NewNotifier()
	n.Start()
	defer n.Stop()

	subs := []*stubSubscriber{{}, {}, {}}
	for _, sub := range subs {
		n.Register(sub)
	}
	require.Equal(t, 3, n.Count())

	n.Broadcast(testEvent())

	require.Eventually(t, func() bool {
		for _, sub := range subs {
			if sub.received() != 1 {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)

	var event models.TraitScoreEvent
	require.NoError(t, json.Unmarshal(subs[0].lastMessage(), &event))
	assert.Equal(t, "new_candidate", event.Event)
	assert.Equal(t, "ada@example.com", event.Data.Email)
	assert.Equal(t, models.DefaultTraitScores(), event.Data.Traits)
}

func TestNotifierDropsFailedSubscriber(t *testing.T) {
	n := NewNotifier()
	n.Start()
	defer n.Stop()

	healthy1 := &stubSubscriber{}
	broken := &stubSubscriber{failWrites: true}
	healthy2 := &stubSubscriber{}
	for _, sub := range []*stubSubscriber{healthy1, broken, healthy2} {
		n.Register(sub)
	}

	n.Broadcast(testEvent())

	// The failing subscriber must not block the others and gets removed
	// after the fan-out pass.
	require.Eventually(t, func() bool {
		return healthy1.received() == 1 && healthy2.received() == 1 && n.Count() == 2
	}, time.Second, 10*time.Millisecond)
	assert.True(t, broken.isClosed())

	// Next broadcast only reaches the survivors.
	n.Broadcast(testEvent())
	require.Eventually(t, func() bool {
		return healthy1.received() == 2 && healthy2.received() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestNotifierStalledSubscriberIsDropped(t *testing.T) {
	n := NewNotifier().(*notifier)
	n.writeWait = 50 * time.Millisecond
	n.Start()
	defer n.Stop()

	healthy := &stubSubscriber{}
	stalled := &stubSubscriber{stall: true}
	n.Register(healthy)
	n.Register(stalled)

	n.Broadcast(testEvent())

	// The stalled write times out instead of pinning the hub: a new
	// recruiter can still connect, and the stalled peer is removed.
	late := &stubSubscriber{}
	n.Register(late)

	require.Eventually(t, func() bool {
		return healthy.received() == 1 && n.Count() == 2
	}, time.Second, 10*time.Millisecond)
	assert.True(t, stalled.isClosed())

	n.Broadcast(testEvent())
	require.Eventually(t, func() bool {
		return healthy.received() == 2 && late.received() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestNotifierBroadcastNeverBlocksCaller(t *testing.T) {
	// Hub not started: nothing drains the queue. Once the buffer fills,
	// further broadcasts must drop the event and return immediately
	// instead of blocking the submission pipeline.
	n := NewNotifier()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			n.Broadcast(testEvent())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full queue")
	}
}

func TestNotifierUnregisterIsIdempotent(t *testing.T) {
	n := NewNotifier()
	n.Start()
	defer n.Stop()

	sub := &stubSubscriber{}
	n.Register(sub)
	require.Equal(t, 1, n.Count())

	n.Unregister(sub)
	assert.Equal(t, 0, n.Count())

	// Removing an already-removed subscriber is a no-op, not an error.
	n.Unregister(sub)
	assert.Equal(t, 0, n.Count())
}
