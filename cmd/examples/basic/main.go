package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/erain9/lob/config"
	"github.com/erain9/lob/pkg/core"
	"github.com/erain9/lob/pkg/logging"
	"github.com/erain9/lob/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: os.Stdout})

	ctx := context.Background()
	provider, err := telemetry.Init(ctx, telemetry.Config{ServiceName: "lob-demo", Enabled: cfg.TelemetryEnabled})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer provider.Shutdown(ctx)

	if cfg.TelemetryEnabled {
		if err := telemetry.StartRuntimeMetrics(); err != nil {
			log.Warn().Err(err).Msg("failed to start runtime metrics")
		}
	}

	metrics, err := telemetry.NewBookMetrics(provider.Meter())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build book metrics")
	}

	book := telemetry.NewInstrumentedBook(core.NewBook(), cfg.Symbol, provider.Tracer(), metrics)

	narrate := func(label string, update core.LevelUpdate) {
		kindColor := color.New(color.FgYellow)
		switch update.Kind {
		case core.KindAdd:
			kindColor = color.New(color.FgGreen)
		case core.KindDelete:
			kindColor = color.New(color.FgRed)
		}
		topMarker := ""
		if update.Top {
			topMarker = color.New(color.FgCyan).Sprint(" [TOP]")
		}
		fmt.Printf("%-28s %s price=%d total=%d hidden=%d visible=%d count=%d%s\n",
			label,
			kindColor.Sprint(update.Kind.String()),
			update.Level.Price, update.Level.TotalVolume, update.Level.HiddenVolume,
			update.Level.VisibleVolume, update.Level.OrdersCount, topMarker)
	}

	// Scenario A — single buy.
	a := core.NewOrder(core.Buy, 100, 0, 10)
	narrate("A: add buy(100,10)", book.AddOrder(ctx, a))

	// Scenario B — join same level.
	b := core.NewOrder(core.Buy, 100, 0, 5)
	narrate("B: add buy(100,5)", book.AddOrder(ctx, b))

	// Scenario C — add improves top.
	c := core.NewOrder(core.Buy, 101, 0, 1)
	narrate("C: add buy(101,1)", book.AddOrder(ctx, c))

	// Scenario D — reduce empties level.
	d := core.NewOrder(core.Sell, 200, 0, 5)
	book.AddOrder(ctx, d)
	d.Quantity, d.VisibleQuantity = 0, 0
	narrate("D: reduce sell(200) to 0", book.ReduceOrder(ctx, d, 5, 0, 5))

	// Scenario E — delete non-top level leaves best unchanged.
	e := core.NewOrder(core.Buy, 99, 0, 7)
	book.AddOrder(ctx, e)
	narrate("E: delete buy(99)", book.DeleteOrder(ctx, e))

	// Scenario F — iceberg accounting.
	f := core.NewOrder(core.Buy, 102, 7, 3)
	book.AddOrder(ctx, f)
	f.Quantity, f.HiddenQuantity, f.VisibleQuantity = 7, 5, 2
	narrate("F: reduce iceberg buy(102)", book.ReduceOrder(ctx, f, 3, 2, 1))

	best, ok := book.Book().BestBid()
	if ok {
		log.Info().Uint64("price", best.Price).Msg("final best bid")
	}
}
