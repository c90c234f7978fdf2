package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/herdsim/herdsim/internal/config"
	"github.com/herdsim/herdsim/internal/core/event"
	coresys "github.com/herdsim/herdsim/internal/core/system"
	"github.com/herdsim/herdsim/internal/data"
	"github.com/herdsim/herdsim/internal/scripting"
	"github.com/herdsim/herdsim/internal/system"
	"github.com/herdsim/herdsim/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              herdsim  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/herdsim.toml"
	if p := os.Getenv("HERDSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Asset catalog: built-in kinds plus whatever the Lua scripts add
	printSection("Data")
	catalog := data.NewCatalog()
	luaEngine, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	extra, err := luaEngine.AssetKinds()
	luaEngine.Close()
	if err != nil {
		return fmt.Errorf("asset catalog: %w", err)
	}
	catalog.Extend(extra...)
	printStat("Asset kinds", catalog.Count())

	// 4. Scenario and world
	scenario, err := data.LoadScenario(cfg.Data.Scenario, catalog)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	w, err := world.New(scenario)
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	printStat("Entities", w.Pool().Len())
	printStat("Map assets", len(scenario.Assets))
	printStat("Asset total", int(scenario.TotalAssets()))
	fmt.Println()

	// 5. Dispatcher
	bus := event.NewBus()
	event.Subscribe(bus, func(ev event.AssetPickedUp) {
		log.Info("asset picked up",
			zap.Uint64("entity", uint64(ev.EntityID)),
			zap.Int64("x", ev.Position.X),
			zap.Int64("y", ev.Position.Y),
			zap.String("kind", string(ev.Asset.Kind)),
			zap.Uint64("amount", ev.Asset.Amount))
	})
	event.Subscribe(bus, func(ev event.EntityArrived) {
		log.Info("entity arrived",
			zap.Uint64("entity", uint64(ev.EntityID)),
			zap.Int64("x", ev.Position.X),
			zap.Int64("y", ev.Position.Y))
	})

	builder := coresys.NewBuilder(log).Workers(cfg.Sim.Workers)
	system.RegisterAll(builder, &system.Deps{
		Bus:        bus,
		Log:        log,
		Audit:      cfg.Sim.Audit,
		AssetTotal: scenario.TotalAssets(),
	})
	dispatcher, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build dispatcher: %w", err)
	}
	printOK(fmt.Sprintf("Dispatcher ready (%d stages)", len(dispatcher.Stages())))

	// 6. Tick loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("Simulation")
	printReady(fmt.Sprintf("Ticks: %d (rate: %s)", cfg.Sim.Ticks, cfg.Sim.TickRate))
	fmt.Println()

	runner := coresys.NewRunner(w, dispatcher, bus, log)
	if err := runner.Run(ctx, cfg.Sim.Ticks, cfg.Sim.TickRate); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		log.Info("received shutdown signal", zap.Uint64("ticks", runner.Ticks()))
	}

	// 7. Report
	report, err := world.Snapshot(w)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	fmt.Println()
	printSection("Result")
	for _, e := range report.Entities {
		fmt.Printf("  %-12s (%d,%d) -> (%d,%d)  %v\n",
			e.Name, e.Position.X, e.Position.Y, e.Target.X, e.Target.Y, e.Inventory)
	}
	for _, a := range report.Assets {
		fmt.Printf("  map (%d,%d): %d %s\n", a.Position.X, a.Position.Y, a.Asset.Amount, a.Asset.Kind)
	}
	printStat("Asset total", int(report.TotalAssets()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
