package ax

import "testing"

func TestReplySwapsAddressesAndKeepsIdent(t *testing.T) {
	me := MustParseCallsign("PU5EPX")
	from := MustParseCallsign("N0CALL")
	req := NewPacket(Loopback, from, 42, NewParams(), "hi")

	pong := NewParams()
	pong.SetFlag("PONG")
	reply := req.Reply(me, pong, req.Msg)

	if reply.To != from {
		t.Fatalf("reply destination should be the original source, got %v", reply.To)
	}
	if reply.From != me {
		t.Fatalf("reply source should be this node, got %v", reply.From)
	}
	if reply.Ident != 42 {
		t.Fatalf("reply must carry the request ident, got %d", reply.Ident)
	}
	if reply.Msg != "hi" {
		t.Fatalf("unexpected message: %q", reply.Msg)
	}
	if reply.RSSI != nil {
		t.Fatalf("locally originated packet must not carry RSSI")
	}
}

func TestWithRSSILeavesOriginalUnannotated(t *testing.T) {
	pkt := NewPacket(Broadcast, MustParseCallsign("N0CALL"), 7, NewParams(), "beacon")
	got := pkt.WithRSSI(-97)
	if got.RSSI == nil || *got.RSSI != -97 {
		t.Fatalf("annotation missing")
	}
	if pkt.RSSI != nil {
		t.Fatalf("WithRSSI must not mutate the receiver")
	}
}

func TestPacketString(t *testing.T) {
	p := NewParams()
	p.SetFlag("PING")
	pkt := NewPacket(MustParseCallsign("K1ABC"), MustParseCallsign("N0CALL"), 3, p, "hello")
	if got := pkt.String(); got != "N0CALL>K1ABC:3 PING hello" {
		t.Fatalf("unexpected string form: %q", got)
	}
}
