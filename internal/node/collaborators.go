package node

import (
	"time"

	"github.com/dx5r/hammesh/internal/ax"
)

// Network is the forwarding/transport collaborator. Routing, retransmission
// bookkeeping and duplicate suppression all live behind this boundary; the
// loop only originates packets and runs the collaborator's pending work.
type Network interface {
	// Submit originates a new application packet; the transport assigns
	// the next request ident.
	Submit(to ax.Callsign, params ax.Params, msg string) error
	// Send accepts a prebuilt outgoing packet with its ident preserved,
	// which is how handler replies keep the ident of the request.
	Send(pkt ax.Packet) error
	// RunPendingWork advances internal timers and delivers any received
	// packets to the registered receiver.
	RunPendingWork(now time.Time)
}

// Store persists the node identity across restarts.
type Store interface {
	LoadIdentity() (string, error)
	SaveIdentity(callsign string) error
}

// Console is the operator terminal: non-blocking byte-at-a-time input and
// line-oriented output. ReadByte reports ok=false when no input is pending.
type Console interface {
	ReadByte() (byte, bool)
	WriteString(s string)
}
