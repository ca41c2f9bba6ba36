package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"alfredoptarigan/personality-assessment/internal/models"
)

// defaultWriteWait bounds a single subscriber write during fan-out. A peer
// that cannot drain its socket within this window is treated the same as a
// failed write and dropped.
const defaultWriteWait = 10 * time.Second

// Subscriber is a live recruiter connection. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Notifier maintains the set of connected recruiter dashboards and fans
// events out to all of them. Broadcast is fire-and-forget: delivery failures
// never reach the submission pipeline.
type Notifier interface {
	Start()
	Stop()
	Register(sub Subscriber)
	Unregister(sub Subscriber)
	Broadcast(event models.TraitScoreEvent)
	Count() int
}

type notifier struct {
	subscribers map[Subscriber]struct{}
	register    chan Subscriber
	unregister  chan Subscriber
	broadcast   chan []byte
	countReq    chan chan int
	stopChan    chan struct{}
	writeWait   time.Duration
	wg          sync.WaitGroup
}

func NewNotifier() Notifier {
	return &notifier{
		subscribers: make(map[Subscriber]struct{}),
		register:    make(chan Subscriber),
		unregister:  make(chan Subscriber),
		broadcast:   make(chan []byte, 16),
		countReq:    make(chan chan int),
		stopChan:    make(chan struct{}),
		writeWait:   defaultWriteWait,
	}
}

// Start implements Notifier.
func (n *notifier) Start() {
	n.wg.Add(1)
	go n.run()
	log.Println("✅ Notifier started successfully")
}

// Stop implements Notifier.
func (n *notifier) Stop() {
	log.Println("🛑 Stopping notifier...")
	close(n.stopChan)
	n.wg.Wait()
	log.Println("✅ Notifier stopped")
}

// Register implements Notifier.
func (n *notifier) Register(sub Subscriber) {
	select {
	case n.register <- sub:
	case <-n.stopChan:
	}
}

// Unregister implements Notifier. Safe to call for an already-removed
// subscriber.
func (n *notifier) Unregister(sub Subscriber) {
	select {
	case n.unregister <- sub:
	case <-n.stopChan:
	}
}

// Broadcast implements Notifier. The event is serialized once; the fan-out
// itself happens on the hub goroutine.
func (n *notifier) Broadcast(event models.TraitScoreEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️  Failed to serialize %s event: %v\n", event.Event, err)
		return
	}

	// Never block the submission pipeline: if the queue is full (e.g. the
	// hub is busy writing to a slow peer), drop the event instead.
	select {
	case n.broadcast <- payload:
	case <-n.stopChan:
		log.Println("⚠️  Notifier stopped, dropping event")
	default:
		log.Println("⚠️  Broadcast queue full, dropping event")
	}
}

// Count implements Notifier.
func (n *notifier) Count() int {
	reply := make(chan int, 1)
	select {
	case n.countReq <- reply:
		return <-reply
	case <-n.stopChan:
		return 0
	}
}

// run owns the subscriber set. All mutation and iteration happens here, so
// a broadcast never races a connect or disconnect.
func (n *notifier) run() {
	defer n.wg.Done()

	for {
		select {
		case sub := <-n.register:
			n.subscribers[sub] = struct{}{}
			log.Printf("📡 Recruiter connected (%d active)\n", len(n.subscribers))

		case sub := <-n.unregister:
			delete(n.subscribers, sub)
			log.Printf("📡 Recruiter disconnected (%d active)\n", len(n.subscribers))

		case payload := <-n.broadcast:
			n.deliver(payload)

		case reply := <-n.countReq:
			reply <- len(n.subscribers)

		case <-n.stopChan:
			for sub := range n.subscribers {
				sub.Close()
			}
			return
		}
	}
}

// deliver writes the payload to every subscriber. Each write carries a
// deadline so a stalled peer cannot pin the hub goroutine. A failed or
// timed-out subscriber does not stop the fan-out; it is dropped after the
// pass so dead connections do not pile up in the set.
func (n *notifier) deliver(payload []byte) {
	var failed []Subscriber
	for sub := range n.subscribers {
		if err := sub.SetWriteDeadline(time.Now().Add(n.writeWait)); err != nil {
			failed = append(failed, sub)
			continue
		}
		if err := sub.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("⚠️  Failed to deliver event to subscriber: %v\n", err)
			failed = append(failed, sub)
		}
	}

	for _, sub := range failed {
		delete(n.subscribers, sub)
		sub.Close()
	}
}
