package transport

import (
	"net"
	"testing"
	"time"

	"github.com/dx5r/hammesh/internal/ax"
)

var (
	meCS   = ax.MustParseCallsign("PU5EPX")
	peerCS = ax.MustParseCallsign("N0CALL")
)

// pair dials two conduits on localhost pointed at each other, standing in
// for a shared broadcast segment.
func pair(t *testing.T) (*UDP, *UDP) {
	t.Helper()

	ua, err := Dial(Config{Identity: meCS, Listen: "127.0.0.1:0", Broadcast: "127.0.0.1:9"})
	if err != nil {
		t.Fatalf("dial a: %v", err)
	}
	t.Cleanup(func() { ua.Close() })

	ub, err := Dial(Config{Identity: peerCS, Listen: "127.0.0.1:0", Broadcast: ua.LocalAddr().String()})
	if err != nil {
		t.Fatalf("dial b: %v", err)
	}
	t.Cleanup(func() { ub.Close() })

	ua.dst = ub.LocalAddr().(*net.UDPAddr)
	return ua, ub
}

func collect(u *UDP) *[]ax.Packet {
	var got []ax.Packet
	u.SetReceiver(func(pkt ax.Packet) { got = append(got, pkt) })
	return &got
}

func waitFor(t *testing.T, u *UDP, got *[]ax.Packet, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(*got) < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d packets, got %d", want, len(*got))
		}
		u.RunPendingWork(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSubmitDeliversAcrossTheSegment(t *testing.T) {
	ua, ub := pair(t)
	got := collect(ub)

	params := ax.NewParams()
	params.SetFlag("PING")
	if err := ua.Submit(peerCS, params, "hi"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	waitFor(t, ub, got, 1)
	pkt := (*got)[0]
	if pkt.From != meCS || pkt.To != peerCS || pkt.Msg != "hi" {
		t.Fatalf("unexpected delivery: %v", pkt)
	}
	if !pkt.Params.Has("PING") {
		t.Fatalf("params lost in transit: %q", pkt.Params.Encode())
	}
}

func TestSubmitAssignsMonotoneIdents(t *testing.T) {
	ua, ub := pair(t)
	got := collect(ub)

	for i := 0; i < 3; i++ {
		if err := ua.Submit(peerCS, ax.NewParams(), "n"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	waitFor(t, ub, got, 3)

	seen := map[uint32]bool{}
	for _, pkt := range *got {
		if seen[pkt.Ident] {
			t.Fatalf("ident %d assigned twice", pkt.Ident)
		}
		seen[pkt.Ident] = true
	}
}

func TestDuplicateFramesAreSuppressed(t *testing.T) {
	ua, ub := pair(t)
	got := collect(ub)

	pkt := ax.NewPacket(peerCS, meCS, 7, ax.NewParams(), "once")
	if err := ua.Send(pkt); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := ua.Send(pkt); err != nil {
		t.Fatalf("resend: %v", err)
	}

	waitFor(t, ub, got, 1)
	// Give the duplicate time to arrive, then confirm it was dropped.
	time.Sleep(100 * time.Millisecond)
	ub.RunPendingWork(time.Now())
	if len(*got) != 1 {
		t.Fatalf("expected duplicate suppression, got %d deliveries", len(*got))
	}
}

func TestLoopbackNeverTouchesTheWire(t *testing.T) {
	ua, _ := pair(t)
	got := collect(ua)

	if err := ua.Submit(ax.Loopback, ax.NewParams(), "self-test"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	ua.RunPendingWork(time.Now())
	if len(*got) != 1 {
		t.Fatalf("loopback frame must be delivered locally, got %d", len(*got))
	}
	if (*got)[0].To != ax.Loopback || (*got)[0].From != meCS {
		t.Fatalf("unexpected loopback frame: %v", (*got)[0])
	}
}

func TestOwnCallsignDeliversLocally(t *testing.T) {
	ua, _ := pair(t)
	got := collect(ua)

	reply := ax.NewPacket(meCS, meCS, 9, ax.NewParams(), "pong")
	if err := ua.Send(reply); err != nil {
		t.Fatalf("send: %v", err)
	}
	ua.RunPendingWork(time.Now())
	if len(*got) != 1 {
		t.Fatalf("frames for our own callsign must come back, got %d", len(*got))
	}
}
