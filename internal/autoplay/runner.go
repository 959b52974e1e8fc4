// Package autoplay runs headless codejam sessions driven by registered
// strategies. Runs are deterministic for a given config, seed and strategy.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/registry"
)

// Options controls a headless run.
type Options struct {
	Seed          int64
	TickRate      int     // Simulated ticks per second
	MaxSeconds    float64 // Simulated time limit
	KeysPerSecond float64 // Typing speed of the simulated player
	Filler        string  // Optional filler text override
	Logger        *log.Logger

	// Observer, when set, sees a snapshot every ObserveEvery ticks and on
	// the tick that submits. A non-nil error stops the run.
	Observer     func(economy.Snapshot, economy.TickReport) error
	ObserveEvery int
}

// DefaultOptions returns a ten-minute run at 30 ticks per second.
func DefaultOptions() Options {
	return Options{
		Seed:          1,
		TickRate:      30,
		MaxSeconds:    600,
		KeysPerSecond: 6,
	}
}

// Result summarizes a finished run.
type Result struct {
	Strategy  string
	Seed      int64
	Ticks     uint64
	Elapsed   float64
	Submitted bool
	State     economy.State
	Scores    economy.Scores
	Purchases []economy.Kind // Successful purchases in order
	Rejected  int
}

// Run plays one session with the strategy registered under strategyID.
func Run(ctx context.Context, cfg config.GameConfig, strategyID string, opts Options) (Result, error) {
	strategy, err := registry.Create(strategyID)
	if err != nil {
		return Result{}, err
	}
	return RunStrategy(ctx, cfg, strategy, opts)
}

// RunStrategy plays one session until it is submitted, the time limit is
// reached or ctx is cancelled. A cancelled run returns the partial result
// together with ctx.Err().
func RunStrategy(ctx context.Context, cfg config.GameConfig, strategy registry.Strategy, opts Options) (Result, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultOptions().TickRate
	}
	if opts.MaxSeconds <= 0 {
		opts.MaxSeconds = DefaultOptions().MaxSeconds
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engineOpts := []economy.Option{economy.WithLogger(logger)}
	if opts.Filler != "" {
		engineOpts = append(engineOpts, economy.WithFiller(opts.Filler))
	}
	engine, err := economy.NewEngine(cfg, opts.Seed, engineOpts...)
	if err != nil {
		return Result{}, fmt.Errorf("autoplay: %w", err)
	}

	strategy.Reset(opts.Seed)
	res := Result{Strategy: strategy.ID(), Seed: opts.Seed}

	if opts.ObserveEvery <= 0 {
		opts.ObserveEvery = 1
	}

	dt := 1.0 / float64(opts.TickRate)
	maxTicks := uint64(opts.MaxSeconds * float64(opts.TickRate))
	keys := 0.0

	logger.Debug("autoplay started", "strategy", res.Strategy, "seed", opts.Seed, "max_ticks", maxTicks)

	for tick := uint64(0); tick < maxTicks; tick++ {
		if tick%256 == 0 {
			if err := ctx.Err(); err != nil {
				res.fill(engine)
				return res, err
			}
		}

		keys += opts.KeysPerSecond * dt
		if n := int(keys); n > 0 {
			keys -= float64(n)
			engine.Push(economy.CodeTyped{Chars: n})
		}

		if kind, ok := strategy.Choose(engine.Snapshot()); ok {
			engine.Push(economy.PurchaseUpgrade{Kind: kind})
		}

		report := engine.Tick(dt)
		for _, p := range report.Purchases {
			if p.Err != nil {
				res.Rejected++
				continue
			}
			res.Purchases = append(res.Purchases, p.Kind)
		}
		if opts.Observer != nil && (report.Submitted || report.Tick%uint64(opts.ObserveEvery) == 0) {
			if err := opts.Observer(engine.Snapshot(), report); err != nil {
				res.fill(engine)
				return res, err
			}
		}
		if report.Submitted {
			break
		}
	}

	res.fill(engine)
	logger.Info("autoplay finished",
		"strategy", res.Strategy,
		"submitted", res.Submitted,
		"ticks", res.Ticks,
		"overall", fmt.Sprintf("%.2f", res.Scores.Overall()),
	)
	return res, nil
}

func (r *Result) fill(e *economy.Engine) {
	snap := e.Snapshot()
	r.Ticks = snap.Tick
	r.Elapsed = snap.Elapsed
	r.State = snap.State
	r.Scores = snap.Scores
	r.Submitted = snap.State.Submitted
}

// IsCancelled reports whether err came from a cancelled run.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
