package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics() // second call must not panic on re-registration

	CountPacketReceived()
	CountPacketSent()
	CountBeacon()
	CountConsoleLine()
	RecordHTTPRequest("PU5EPX", "GET", "/status", 200, 3*time.Millisecond)
}
