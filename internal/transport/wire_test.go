package transport

import (
	"errors"
	"testing"

	"github.com/dx5r/hammesh/internal/ax"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	params := ax.NewParams()
	params.SetFlag("PING")
	params.Set("TTL", "4")
	pkt := ax.NewPacket(
		ax.MustParseCallsign("K1ABC"),
		ax.MustParseCallsign("PU5EPX-11"),
		42,
		params,
		"hello mesh",
	).WithRSSI(-104)

	buf, err := encodePacket(pkt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodePacket(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.To != pkt.To || got.From != pkt.From || got.Ident != 42 {
		t.Fatalf("addressing mismatch: %v", got)
	}
	if got.Params.Encode() != "PING,TTL=4" {
		t.Fatalf("params mismatch: %q", got.Params.Encode())
	}
	if got.Msg != "hello mesh" {
		t.Fatalf("message mismatch: %q", got.Msg)
	}
	if got.RSSI == nil || *got.RSSI != -104 {
		t.Fatalf("rssi annotation lost")
	}
}

func TestDecodeRejectsBadFrames(t *testing.T) {
	cases := [][]byte{
		[]byte("not json"),
		[]byte(`{"to":"","from":"PU5EPX","id":1}`),
		[]byte(`{"to":"K1ABC","from":"NOT A CALL","id":1}`),
	}
	for _, buf := range cases {
		if _, err := decodePacket(buf); !errors.Is(err, ErrBadEnvelope) {
			t.Fatalf("decode(%q): expected ErrBadEnvelope, got %v", buf, err)
		}
	}
}
