// Package sse streams content change notifications to browsers with
// Server-Sent Events.
package sse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Event types.
const (
	TypeContentReloaded = "content.reloaded"
	TypeArchiveUpdated  = "archive.updated"
)

const (
	// retryMillis is the reconnect delay suggested to EventSource clients.
	retryMillis = 3000

	clientBuffer = 64
	queueSize    = 256
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Reloaded is the payload of a content.reloaded event.
type Reloaded struct {
	Version string `json:"version"`
	Posts   int    `json:"posts"`
}

// Options tunes a Broker.
type Options struct {
	// ArchiveThrottle is the minimum gap between archive.updated events.
	ArchiveThrottle time.Duration

	// Heartbeat is the interval of keep-alive comments; zero disables them.
	Heartbeat time.Duration
}

// hub is the state owned by the broker goroutine.
type hub struct {
	clients     map[chan []byte]struct{}
	seq         uint64
	lastArchive time.Time
	archiveMin  time.Duration
}

func (h *hub) broadcast(event Event) {
	h.seq++
	frame, err := encode(h.seq, event)
	if err != nil {
		return
	}
	for ch := range h.clients {
		select {
		case ch <- frame:
		default:
			// Slow client; it misses this frame.
		}
	}
}

func (h *hub) reloaded(r Reloaded) {
	h.broadcast(Event{Type: TypeContentReloaded, Data: r})
	if now := time.Now(); now.Sub(h.lastArchive) >= h.archiveMin {
		h.lastArchive = now
		h.broadcast(Event{Type: TypeArchiveUpdated, Data: map[string]string{}})
	}
}

func (h *hub) closeAll() {
	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}
}

// Broker fans events out to connected clients. Every mutation is queued as a
// command and applied by a single goroutine.
type Broker struct {
	heartbeat time.Duration

	cmds chan func(*hub)
	quit chan struct{}
	done chan struct{}
	stop sync.Once
}

// NewBroker starts a broker. Close must be called to stop its loop.
func NewBroker(opts Options) *Broker {
	if opts.ArchiveThrottle <= 0 {
		opts.ArchiveThrottle = 2 * time.Second
	}
	b := &Broker{
		heartbeat: opts.Heartbeat,
		cmds:      make(chan func(*hub), queueSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go b.loop(&hub{
		clients:    make(map[chan []byte]struct{}),
		archiveMin: opts.ArchiveThrottle,
	})
	return b
}

func (b *Broker) loop(h *hub) {
	defer close(b.done)
	for {
		select {
		case <-b.quit:
			h.closeAll()
			return
		case cmd := <-b.cmds:
			cmd(h)
		}
	}
}

// submit queues cmd. It reports false once the loop has exited.
func (b *Broker) submit(cmd func(*hub)) bool {
	select {
	case <-b.done:
		return false
	default:
	}
	select {
	case b.cmds <- cmd:
		return true
	case <-b.done:
		return false
	}
}

// encode frames event with a sequence id so reconnecting browsers can report
// the last one they saw in Last-Event-ID.
func encode(id uint64, event Event) ([]byte, error) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "id: %d\nevent: %s\n", id, event.Type)
	for line := range strings.SplitSeq(string(payload), "\n") {
		fmt.Fprintf(&buf, "data: %s\n", line)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Close stops the loop and closes every client channel. It is idempotent.
func (b *Broker) Close() {
	b.stop.Do(func() { close(b.quit) })
	<-b.done
}

// Subscribe registers a client. The returned channel is closed by
// Unsubscribe or Close; on a closed broker it comes back already closed.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	added := make(chan struct{})
	ok := b.submit(func(h *hub) {
		h.clients[ch] = struct{}{}
		close(added)
	})
	if !ok {
		close(ch)
		return ch
	}
	select {
	case <-added:
	case <-b.done:
		// The loop closes every channel it registered before exiting.
		select {
		case <-added:
		default:
			close(ch)
		}
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.submit(func(h *hub) {
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
	})
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	reply := make(chan int, 1)
	if !b.submit(func(h *hub) { reply <- len(h.clients) }) {
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-b.done:
		return 0
	}
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	b.submit(func(h *hub) { h.broadcast(event) })
}

// PublishReload announces a new catalog, followed by archive.updated unless
// one was sent within the throttle window.
func (b *Broker) PublishReload(r Reloaded) {
	b.submit(func(h *hub) { h.reloaded(r) })
}

// ServeHTTP is the SSE endpoint handler (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "retry: %d\n\n", retryMillis)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	var tick <-chan time.Time
	if b.heartbeat > 0 {
		t := time.NewTicker(b.heartbeat)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-tick:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case frame, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(frame)
			flusher.Flush()
		}
	}
}
