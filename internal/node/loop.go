package node

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dx5r/hammesh/internal/ax"
	"github.com/dx5r/hammesh/internal/command"
	"github.com/dx5r/hammesh/internal/handler"
	"github.com/dx5r/hammesh/internal/observability"
)

// LoopConfig carries the scheduler timing knobs.
type LoopConfig struct {
	// BeaconAverage is the average interval between broadcast beacons.
	// Actual intervals are drawn uniformly from [0.5, 1.5] times this
	// value so neighbouring nodes do not synchronise on the channel.
	BeaconAverage time.Duration
	// StartupDelay is the fixed wait before the first beacon.
	StartupDelay time.Duration
	// BeaconMsg is the greeting carried by every beacon.
	BeaconMsg string
}

// LoopOptions wires the loop's collaborators.
type LoopOptions struct {
	Config   LoopConfig
	Identity ax.Callsign
	Network  Network
	Store    Store
	Console  Console
	Handlers handler.Chain
	Rand     *rand.Rand

	// OnPacket, when set, is invoked once per fully received inbound
	// packet, before dispatch. Used by the status surface; not consulted
	// for any addressing decision.
	OnPacket func(pkt ax.Packet)
}

// Loop is the node's cooperative scheduler. It is single-threaded by
// contract: all state below is touched only from Tick and from the
// transport's receive callback, which the transport invokes inside
// RunPendingWork on the same goroutine.
type Loop struct {
	cfg      LoopConfig
	me       ax.Callsign
	net      Network
	store    Store
	console  Console
	chain    handler.Chain
	rng      *rand.Rand
	onPacket func(pkt ax.Packet)

	line       lineBuffer
	nextBeacon time.Time
	restart    bool
}

// NewLoop builds the scheduler. The first beacon is due at
// now + StartupDelay.
func NewLoop(now time.Time, opts LoopOptions) *Loop {
	chain := opts.Handlers
	if chain == nil {
		chain = handler.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	return &Loop{
		cfg:        opts.Config,
		me:         opts.Identity,
		net:        opts.Network,
		store:      opts.Store,
		console:    opts.Console,
		chain:      chain,
		rng:        rng,
		onPacket:   opts.OnPacket,
		nextBeacon: now.Add(opts.Config.StartupDelay),
	}
}

// Identity returns the callsign the loop is answering as.
func (l *Loop) Identity() ax.Callsign { return l.me }

// RestartRequested reports whether a persisted identity change is waiting
// for the process entry point to re-exec.
func (l *Loop) RestartRequested() bool { return l.restart }

// Tick runs one scheduler iteration. A due beacon preempts the whole
// iteration; otherwise pending console input is drained and the network
// collaborator runs its pending work. Each unit of work runs to completion
// before the next, so nothing interleaves below line or packet granularity.
func (l *Loop) Tick(now time.Time) {
	if !now.Before(l.nextBeacon) {
		l.fireBeacon(now)
		return
	}
	l.drainConsole()
	l.net.RunPendingWork(now)
}

func (l *Loop) fireBeacon(now time.Time) {
	if err := l.net.Submit(ax.Broadcast, ax.NewParams(), l.cfg.BeaconMsg); err != nil {
		log.Error().Err(err).Msg("beacon submit failed")
	} else {
		observability.CountBeacon()
	}
	l.nextBeacon = now.Add(l.beaconInterval())
}

// beaconInterval draws the next gap uniformly from [0.5A, 1.5A].
func (l *Loop) beaconInterval() time.Duration {
	a := l.cfg.BeaconAverage
	if a <= 0 {
		return 0
	}
	return a/2 + time.Duration(l.rng.Int63n(int64(a)))
}

// HandleInbound feeds one received packet through the handler chain. The
// first handler to claim it produces the single reply; unclaimed packets
// are left to the forwarding layer. The packet is not retained after
// dispatch.
func (l *Loop) HandleInbound(pkt ax.Packet) {
	observability.CountPacketReceived()
	if l.onPacket != nil {
		l.onPacket(pkt)
	}

	reply, ok := l.chain.Dispatch(pkt, l.me)
	if !ok {
		return
	}
	if err := l.net.Send(reply); err != nil {
		log.Error().Err(err).Str("to", reply.To.String()).Msg("reply send failed")
	}
}

func (l *Loop) drainConsole() {
	for {
		c, ok := l.console.ReadByte()
		if !ok {
			return
		}
		l.consumeByte(c)
	}
}

func (l *Loop) consumeByte(c byte) {
	switch {
	case c == byteCR || c == byteLF:
		line := l.line.takeLine()
		if line == "" {
			return
		}
		l.console.WriteString("\r\n")
		l.execLine(line)
	case c == byteBS || c == byteDEL:
		if l.line.pop() {
			l.console.WriteString("\b \b")
		}
	case c >= 0x20 && c < 0x7f:
		if l.line.push(c) {
			l.console.WriteString(string(rune(c)))
		}
	}
}

func (l *Loop) execLine(raw string) {
	observability.CountConsoleLine()
	cmd := command.Parse(raw)
	switch cmd.Kind {
	case command.KindNotCommand:
		l.console.WriteString("unsupported line, commands start with !\r\n")
	case command.KindUnknown:
		l.console.WriteString("unknown command: " + cmd.Name + "\r\n")
	case command.KindShowCallsign:
		l.console.WriteString("callsign: " + l.me.String() + "\r\n")
	case command.KindSetCallsign:
		l.setCallsign(cmd.Arg)
	}
}

// setCallsign validates and persists a new identity, then raises the
// restart signal so the change takes effect in a clean process. A failed
// persist aborts the restart and keeps the running identity.
func (l *Loop) setCallsign(raw string) {
	cs, err := ax.ParseCallsign(raw)
	if err != nil {
		l.console.WriteString("invalid callsign: " + err.Error() + "\r\n")
		return
	}
	if cs.Classify() != ax.ClassOrdinary {
		l.console.WriteString("reserved callsign " + cs.String() + ": node identity must be addressable\r\n")
		return
	}
	if err := l.store.SaveIdentity(cs.String()); err != nil {
		log.Error().Err(err).Str("callsign", cs.String()).Msg("identity save failed")
		l.console.WriteString("could not save callsign, keeping " + l.me.String() + "\r\n")
		return
	}
	l.console.WriteString("callsign set to " + cs.String() + ", restarting\r\n")
	l.restart = true
}
