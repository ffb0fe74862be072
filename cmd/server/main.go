package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chainclash/clash-server-go/internal/config"
	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/replay"
	"github.com/chainclash/clash-server-go/internal/match"
	"github.com/chainclash/clash-server-go/internal/repository"
	"github.com/chainclash/clash-server-go/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting clash server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	pool, err := repository.NewPool(ctx, logger, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	store := repository.NewMatchStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to prepare database schema", zap.Error(err))
	}

	recorder := replay.NewRecorder(logger, cfg.Game.ReplayDir)

	engCfg := engine.DefaultConfig()
	engCfg.TurnCap = cfg.Game.TurnCap
	engCfg.ManaRegen = cfg.Game.ManaRegen
	eng := engine.New(logger, engCfg)

	mgr := match.NewManager(logger, eng, store, recorder)
	srv := server.New(logger, cfg, eng, mgr)

	logger.Info("clash server initialized",
		zap.String("addr", cfg.Server.Addr),
		zap.String("grid_preset", cfg.Game.GridPreset),
		zap.Int("turn_cap", cfg.Game.TurnCap),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("clash server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
