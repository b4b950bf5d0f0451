// Command savetheplanet runs the game headless: it advances the world from
// the wall clock or a jittered replay, optionally plays it automatically, and
// audits the saved-emissions ledger against the journal on exit.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jogru0/save-the-planet/internal/api"
	"github.com/jogru0/save-the-planet/internal/config"
	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/engine"
	"github.com/jogru0/save-the-planet/internal/journal"
	"github.com/jogru0/save-the-planet/internal/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run plays one game with cfg. Every resource it opens is released before it
// returns.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	balance, err := config.BalanceFor(cfg.Difficulty)
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	slog.Info("save the planet",
		"mode", cfg.Mode,
		"difficulty", cfg.Difficulty,
		"warp", cfg.Warp,
		"autoplay", cfg.Autoplay,
	)

	// ── Journal ───────────────────────────────────────────────────────
	db, err := journal.Open(cfg.JournalDSN)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer db.Close()
	slog.Info("journal opened", "run", db.RunID())

	// ── World ─────────────────────────────────────────────────────────
	w := world.New(
		world.WithBalance(balance),
		world.WithRecorder(db),
		world.WithLogger(logger.With("component", "world")),
	)
	status := newStatusReporter(duration.FromStd(cfg.StatusInterval))

	// The frame loop and HTTP handlers share the world.
	var mu sync.Mutex

	eng := engine.NewEngine()
	eng.Interval = cfg.FrameInterval
	eng.Warp = cfg.Warp
	eng.OnFrame = func(total duration.Duration) {
		mu.Lock()
		defer mu.Unlock()
		w.Simulate(total)
		if cfg.Autoplay {
			autoplay(w)
		}
		status.Report(w)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.APIPort != 0 {
		apiServer := &api.Server{
			Status: func() world.Status {
				mu.Lock()
				defer mu.Unlock()
				return w.Snapshot()
			},
			Port: cfg.APIPort,
		}
		apiServer.Start()
	}

	// ── Start ─────────────────────────────────────────────────────────
	switch cfg.Mode {
	case config.ModeReplay:
		frame := cfg.FrameInterval * time.Duration(cfg.Warp)
		eng.Replay(cfg.ReplayFrames, engine.NewJitter(cfg.JitterSeed, frame, frame/2))
	case config.ModeRealtime:
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if cfg.RunFor > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.RunFor)
			defer cancel()
		}
		fmt.Println("Saving the planet... (Ctrl+C to stop)")
		eng.Run(ctx)
	}
	mu.Lock()
	defer mu.Unlock()
	status.Final(w)

	// ── Audit ─────────────────────────────────────────────────────────
	if err := audit(db, w); err != nil {
		return fmt.Errorf("journal audit: %w", err)
	}
	slog.Info("journal audit passed", "saved", w.Emission().Net().Text(6))
	return nil
}

// audit replays the journal and compares it with the live ledger.
func audit(db *journal.DB, w *world.World) error {
	replayed, err := db.Replay(world.LedgerEmission)
	if err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}
	live := w.Emission()
	if replayed.Credits() != live.Credits() || replayed.Debits() != live.Debits() {
		return fmt.Errorf("journal has +%s/-%s, ledger has +%s/-%s",
			replayed.Credits().Text(6), replayed.Debits().Text(6),
			live.Credits().Text(6), live.Debits().Text(6))
	}
	return nil
}
