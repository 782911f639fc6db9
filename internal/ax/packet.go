package ax

import "fmt"

// Packet is the protocol's unit of exchange. All fields are fixed at
// construction; derived packets are built with Reply or WithRSSI rather
// than by mutation.
type Packet struct {
	To     Callsign
	From   Callsign
	Ident  uint32
	Params Params
	Msg    string

	// RSSI is the received-signal-strength annotation. It is present only
	// on packets that arrived from the transport, never on locally
	// originated ones.
	RSSI *int
}

func NewPacket(to, from Callsign, ident uint32, params Params, msg string) Packet {
	return Packet{To: to, From: from, Ident: ident, Params: params, Msg: msg}
}

// Reply builds the response to p: destination and source swapped relative
// to the original, source set to this node, and the same ident so the
// requester (and the duplicate-suppression layer) can correlate it.
func (p Packet) Reply(me Callsign, params Params, msg string) Packet {
	return Packet{To: p.From, From: me, Ident: p.Ident, Params: params, Msg: msg}
}

// WithRSSI returns a copy of p annotated with a signal-strength reading.
func (p Packet) WithRSSI(rssi int) Packet {
	p.RSSI = &rssi
	return p
}

func (p Packet) String() string {
	s := fmt.Sprintf("%s>%s:%d", p.From, p.To, p.Ident)
	if enc := p.Params.Encode(); enc != "" {
		s += " " + enc
	}
	if p.Msg != "" {
		s += " " + p.Msg
	}
	return s
}
