package main

import (
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dx5r/hammesh/internal/ax"
	"github.com/dx5r/hammesh/internal/config"
	"github.com/dx5r/hammesh/internal/node"
	"github.com/dx5r/hammesh/internal/observability"
	"github.com/dx5r/hammesh/internal/status"
	"github.com/dx5r/hammesh/internal/storage"
	"github.com/dx5r/hammesh/internal/transport"
)

// tickPeriod bounds scheduler latency; every due beacon, console byte and
// received frame is handled within one period.
const tickPeriod = 10 * time.Millisecond

// fallbackCallsign is the identity of a node that has never been configured.
const fallbackCallsign = "NOCALL"

func main() {
	cfgPath := flag.String("config", "", "path to hammesh.toml (defaults apply when empty)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			observability.InitLogger("hammesh", "info")
			log.Fatal().Err(err).Str("path", *cfgPath).Msg("config load failed")
		}
		cfg = loaded
	}
	observability.InitLogger("hammesh", cfg.LogLevel)

	store := storage.NewFile(cfg.Node.IdentityFile)
	me := loadIdentity(store)

	tr, err := transport.Dial(transport.Config{
		Identity:  me,
		Listen:    cfg.Radio.Listen,
		Broadcast: cfg.Radio.Broadcast,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("radio transport failed")
	}
	defer tr.Close()

	recorder := status.NewRecorder(32)
	srv := status.New(me.String(), recorder, cfg.Status.CorsOrigins)
	go func() {
		if err := srv.Run(cfg.Status.Addr); err != nil {
			log.Error().Err(err).Str("addr", cfg.Status.Addr).Msg("status server stopped")
		}
	}()

	console := newStdinConsole()
	loop := node.NewLoop(time.Now(), node.LoopOptions{
		Config: node.LoopConfig{
			BeaconAverage: cfg.Beacon.Average(),
			StartupDelay:  cfg.Beacon.StartupDelay(),
			BeaconMsg:     cfg.Beacon.Message,
		},
		Identity: me,
		Network:  tr,
		Store:    store,
		Console:  console,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		OnPacket: recorder.Record,
	})
	tr.SetReceiver(loop.HandleInbound)

	log.Info().
		Str("callsign", me.String()).
		Str("listen", cfg.Radio.Listen).
		Str("status", cfg.Status.Addr).
		Msg("node up")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	for !loop.RestartRequested() {
		select {
		case sig := <-stop:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			return
		default:
		}
		loop.Tick(time.Now())
		time.Sleep(tickPeriod)
	}

	restart(tr)
}

// loadIdentity reads the persisted callsign, falling back to NOCALL for a
// fresh node and for unreadable state. An unparsable persisted callsign is
// reported but never keeps the node down.
func loadIdentity(store *storage.File) ax.Callsign {
	raw, err := store.LoadIdentity()
	if err != nil {
		if errors.Is(err, storage.ErrCorruptState) {
			log.Warn().Err(err).Msg("identity state unreadable, starting as " + fallbackCallsign)
		} else {
			log.Warn().Err(err).Msg("identity load failed, starting as " + fallbackCallsign)
		}
		return ax.MustParseCallsign(fallbackCallsign)
	}
	if raw == "" {
		return ax.MustParseCallsign(fallbackCallsign)
	}
	cs, err := ax.ParseCallsign(raw)
	if err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("persisted callsign invalid, starting as " + fallbackCallsign)
		return ax.MustParseCallsign(fallbackCallsign)
	}
	return cs
}

// restart re-execs the process image so the new identity is picked up from
// a clean slate, the closest a long-running daemon gets to a reboot.
func restart(tr *transport.UDP) {
	_ = tr.Close()
	exe, err := os.Executable()
	if err != nil {
		log.Fatal().Err(err).Msg("restart failed, could not resolve executable")
	}
	log.Info().Msg("restarting with new callsign")
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		log.Fatal().Err(err).Msg("restart exec failed")
	}
}
