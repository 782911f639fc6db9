// Package handler owns the mesh command set.
//
// Ownership boundary:
// - the attempt-to-handle contract shared by every command
// - the addressing guard for local delivery
// - dispatch ordering and exclusivity
package handler

import "github.com/dx5r/hammesh/internal/ax"

// Wire-level command vocabulary. Stable contract; peers match on these keys.
const (
	KeyPing = "PING"
	KeyPong = "PONG"
	KeyRreq = "RREQ"
	KeyRrsp = "RRSP"

	// PathSeparator is appended to a route-request trace once per
	// responding hop.
	PathSeparator = "|"
)

// Handler is one mesh command. Handle inspects pkt and either claims it,
// returning the reply to transmit, or reports false so the next handler
// (and ultimately the forwarding layer) gets a look. Handlers are stateless
// with respect to packets and must not retain pkt after returning.
type Handler interface {
	Handle(pkt ax.Packet, me ax.Callsign) (ax.Packet, bool)
}

// localDelivery is the addressing guard shared by every handler: a packet is
// eligible for local handling when its destination is not a group-query
// address, or is explicitly the loopback marker. Group-query traffic is for
// passive listening and relay, not automatic replies, except when the node
// is deliberately exercising its own loopback path.
func localDelivery(to ax.Callsign) bool {
	return !to.IsQuery() || to.IsLoopback()
}

// Chain is a fixed, ordered handler list.
type Chain []Handler

// Default is the command set shipped with the node, in dispatch order.
func Default() Chain {
	return Chain{Ping{}, Rreq{}}
}

// Dispatch offers pkt to each handler in order and stops at the first one
// that claims it. At most one reply is ever produced; ok is false when no
// handler claims the packet, in which case it passes through to forwarding
// unmodified.
func (c Chain) Dispatch(pkt ax.Packet, me ax.Callsign) (ax.Packet, bool) {
	for _, h := range c {
		if reply, ok := h.Handle(pkt, me); ok {
			return reply, true
		}
	}
	return ax.Packet{}, false
}
