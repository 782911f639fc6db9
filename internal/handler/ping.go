package handler

import "github.com/dx5r/hammesh/internal/ax"

// Ping answers liveness probes. The reply carries only the PONG flag and
// echoes the request payload unchanged, confirming reachability and
// round-tripping the original message.
type Ping struct{}

func (Ping) Handle(pkt ax.Packet, me ax.Callsign) (ax.Packet, bool) {
	if !localDelivery(pkt.To) || !pkt.Params.Has(KeyPing) {
		return ax.Packet{}, false
	}
	pong := ax.NewParams()
	pong.SetFlag(KeyPong)
	return pkt.Reply(me, pong, pkt.Msg), true
}
