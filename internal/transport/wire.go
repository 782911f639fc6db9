package transport

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dx5r/hammesh/internal/ax"
)

var ErrBadEnvelope = errors.New("transport: bad envelope")

// envelope is the wire form of one application packet. It only has to
// round-trip between hammesh processes on the same segment; a radio bridge
// may annotate RSSI before reinjecting a frame.
type envelope struct {
	To     string `json:"to"`
	From   string `json:"from"`
	Ident  uint32 `json:"id"`
	Params string `json:"params,omitempty"`
	Msg    string `json:"msg,omitempty"`
	RSSI   *int   `json:"rssi,omitempty"`
}

func encodePacket(pkt ax.Packet) ([]byte, error) {
	return json.Marshal(envelope{
		To:     pkt.To.String(),
		From:   pkt.From.String(),
		Ident:  pkt.Ident,
		Params: pkt.Params.Encode(),
		Msg:    pkt.Msg,
		RSSI:   pkt.RSSI,
	})
}

func decodePacket(buf []byte) (ax.Packet, error) {
	var env envelope
	if err := json.Unmarshal(buf, &env); err != nil {
		return ax.Packet{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	to, err := ax.ParseCallsign(env.To)
	if err != nil {
		return ax.Packet{}, fmt.Errorf("%w: to: %v", ErrBadEnvelope, err)
	}
	from, err := ax.ParseCallsign(env.From)
	if err != nil {
		return ax.Packet{}, fmt.Errorf("%w: from: %v", ErrBadEnvelope, err)
	}
	pkt := ax.NewPacket(to, from, env.Ident, ax.ParseParams(env.Params), env.Msg)
	if env.RSSI != nil {
		pkt = pkt.WithRSSI(*env.RSSI)
	}
	return pkt, nil
}
