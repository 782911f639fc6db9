// Package status exposes the operator status surface over HTTP: node
// identity, uptime and the most recently heard packets. It observes the
// core through the packet-received callback only.
package status

import (
	"sync"
	"time"

	"github.com/dx5r/hammesh/internal/ax"
)

// Entry is one heard packet as shown to the operator.
type Entry struct {
	To     string    `json:"to"`
	From   string    `json:"from"`
	Ident  uint32    `json:"id"`
	Params string    `json:"params"`
	Msg    string    `json:"msg"`
	RSSI   *int      `json:"rssi,omitempty"`
	At     time.Time `json:"at"`
}

// Recorder retains the most recent received packets in a fixed-size ring.
// Record is the application-layer packet callback; it may be called from
// the scheduler goroutine while HTTP readers list entries, hence the lock.
type Recorder struct {
	mu    sync.Mutex
	ring  []Entry
	next  int
	total uint64
	now   func() time.Time
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 32
	}
	return &Recorder{ring: make([]Entry, 0, capacity), now: time.Now}
}

func (r *Recorder) Record(pkt ax.Packet) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := Entry{
		To:     pkt.To.String(),
		From:   pkt.From.String(),
		Ident:  pkt.Ident,
		Params: pkt.Params.Encode(),
		Msg:    pkt.Msg,
		RSSI:   pkt.RSSI,
		At:     r.now(),
	}
	if len(r.ring) < cap(r.ring) {
		r.ring = append(r.ring, e)
	} else {
		r.ring[r.next] = e
	}
	r.next = (r.next + 1) % cap(r.ring)
	r.total++
}

// Recent returns the retained entries, newest first.
func (r *Recorder) Recent() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.ring))
	for i := 0; i < len(r.ring); i++ {
		idx := (r.next - 1 - i + len(r.ring)) % len(r.ring)
		out = append(out, r.ring[idx])
	}
	return out
}

// Total is the count of packets heard since startup, including those that
// have rotated out of the ring.
func (r *Recorder) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
