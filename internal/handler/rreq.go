package handler

import "github.com/dx5r/hammesh/internal/ax"

// Rreq answers route-discovery probes. Each replying node appends one path
// separator to the message body, so the trace accumulates one marker per
// hop as the forwarding layer carries it onward.
type Rreq struct{}

func (Rreq) Handle(pkt ax.Packet, me ax.Callsign) (ax.Packet, bool) {
	if !localDelivery(pkt.To) || !pkt.Params.Has(KeyRreq) {
		return ax.Packet{}, false
	}
	rrsp := ax.NewParams()
	rrsp.SetFlag(KeyRrsp)
	return pkt.Reply(me, rrsp, pkt.Msg+PathSeparator), true
}
