package transport

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dx5r/hammesh/internal/ax"
	"github.com/dx5r/hammesh/internal/observability"
)

const (
	maxFrameSize = 2048
	inboxSize    = 64

	// seenTTL is how long a (source, ident) pair suppresses duplicate
	// delivery of the same request.
	seenTTL = 30 * time.Second
)

var ErrClosed = errors.New("transport: closed")

// Config wires one UDP conduit.
type Config struct {
	// Identity is the source callsign stamped on originated packets.
	Identity ax.Callsign
	// Listen is the local UDP address, e.g. ":8573".
	Listen string
	// Broadcast is where outgoing frames are sent, typically the
	// segment's broadcast address on the same port.
	Broadcast string
}

type seenKey struct {
	from  string
	to    string
	ident uint32
}

// UDP implements the node's Network collaborator over a shared UDP segment.
// A background goroutine moves frames from the socket into a bounded inbox;
// RunPendingWork drains the inbox on the scheduler goroutine, so the
// receive callback always runs single-threaded with the node loop.
type UDP struct {
	me    ax.Callsign
	conn  *net.UDPConn
	dst   *net.UDPAddr
	recv  func(ax.Packet)
	inbox chan ax.Packet
	ident uint32
	seen  map[seenKey]time.Time
}

// Dial binds the local socket and starts the read goroutine.
func Dial(cfg Config) (*UDP, error) {
	laddr, err := net.ResolveUDPAddr("udp", cfg.Listen)
	if err != nil {
		return nil, fmt.Errorf("transport: listen addr: %w", err)
	}
	dst, err := net.ResolveUDPAddr("udp", cfg.Broadcast)
	if err != nil {
		return nil, fmt.Errorf("transport: broadcast addr: %w", err)
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("transport: bind: %w", err)
	}

	u := &UDP{
		me:    cfg.Identity,
		conn:  conn,
		dst:   dst,
		inbox: make(chan ax.Packet, inboxSize),
		seen:  make(map[seenKey]time.Time),
	}
	go u.readLoop()
	return u, nil
}

// SetReceiver registers the inbound packet sink. Must be set before the
// first RunPendingWork call that should deliver anything.
func (u *UDP) SetReceiver(fn func(ax.Packet)) { u.recv = fn }

// LocalAddr returns the bound socket address.
func (u *UDP) LocalAddr() net.Addr { return u.conn.LocalAddr() }

func (u *UDP) Close() error { return u.conn.Close() }

// Submit originates a new application packet with the next request ident.
// Only the scheduler goroutine submits, so the counter needs no lock.
func (u *UDP) Submit(to ax.Callsign, params ax.Params, msg string) error {
	u.ident++
	return u.Send(ax.NewPacket(to, u.me, u.ident, params, msg))
}

// Send transmits a prebuilt outgoing packet. Packets addressed to the
// loopback marker or to this node's own callsign never touch the wire:
// they are delivered straight back into the inbox, which is what makes
// self-test probes and their replies work without a peer.
func (u *UDP) Send(pkt ax.Packet) error {
	if pkt.To.IsLoopback() || pkt.To == u.me {
		select {
		case u.inbox <- pkt:
		default:
			log.Warn().Str("packet", pkt.String()).Msg("inbox full, loopback frame dropped")
		}
		observability.CountPacketSent()
		return nil
	}

	buf, err := encodePacket(pkt)
	if err != nil {
		return err
	}
	if _, err := u.conn.WriteToUDP(buf, u.dst); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	observability.CountPacketSent()
	return nil
}

// RunPendingWork ages the duplicate-suppression cache and delivers every
// packet currently in the inbox to the receiver. Non-blocking by contract.
func (u *UDP) RunPendingWork(now time.Time) {
	for key, at := range u.seen {
		if now.Sub(at) > seenTTL {
			delete(u.seen, key)
		}
	}

	for {
		select {
		case pkt := <-u.inbox:
			key := seenKey{from: pkt.From.String(), to: pkt.To.String(), ident: pkt.Ident}
			if _, dup := u.seen[key]; dup {
				continue
			}
			u.seen[key] = now
			if u.recv != nil {
				u.recv(pkt)
			}
		default:
			return
		}
	}
}

func (u *UDP) readLoop() {
	buf := make([]byte, maxFrameSize)
	for {
		n, _, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			// Socket closed during shutdown.
			return
		}
		pkt, err := decodePacket(buf[:n])
		if err != nil {
			log.Debug().Err(err).Msg("dropping undecodable frame")
			continue
		}
		// Broadcast frames loop back to our own socket; drop them.
		if pkt.From == u.me {
			continue
		}
		select {
		case u.inbox <- pkt:
		default:
			log.Warn().Str("packet", pkt.String()).Msg("inbox full, frame dropped")
		}
	}
}
