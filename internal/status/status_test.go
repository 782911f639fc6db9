package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dx5r/hammesh/internal/ax"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthAndStatus(t *testing.T) {
	s := New("PU5EPX", NewRecorder(4), nil)

	w := get(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	w = get(t, s, "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var body struct {
		Callsign     string `json:"callsign"`
		PacketsHeard uint64 `json:"packets_heard"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Callsign != "PU5EPX" {
		t.Fatalf("expected the node callsign, got %q", body.Callsign)
	}
}

func TestPacketsNewestFirstWithRingRotation(t *testing.T) {
	rec := NewRecorder(2)
	fixed := time.Unix(1700000000, 0)
	rec.now = func() time.Time { return fixed }
	s := New("PU5EPX", rec, nil)

	from := ax.MustParseCallsign("N0CALL")
	for i := uint32(1); i <= 3; i++ {
		rec.Record(ax.NewPacket(ax.Broadcast, from, i, ax.NewParams(), "b").WithRSSI(-90))
	}

	w := get(t, s, "/packets")
	if w.Code != http.StatusOK {
		t.Fatalf("packets: %d", w.Code)
	}
	var body struct {
		Packets []Entry `json:"packets"`
		Count   int     `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 2 {
		t.Fatalf("ring of 2 should retain 2 entries, got %d", body.Count)
	}
	if body.Packets[0].Ident != 3 || body.Packets[1].Ident != 2 {
		t.Fatalf("expected newest first, got %v", body.Packets)
	}
	if body.Packets[0].RSSI == nil || *body.Packets[0].RSSI != -90 {
		t.Fatalf("rssi annotation missing from the display entry")
	}
	if rec.Total() != 3 {
		t.Fatalf("total should count rotated-out packets, got %d", rec.Total())
	}
}

func TestMetricsEndpointServes(t *testing.T) {
	s := New("PU5EPX", NewRecorder(4), nil)
	if w := get(t, s, "/metrics"); w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
}
