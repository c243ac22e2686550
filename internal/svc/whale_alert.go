package svc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mantelijo/whale-alert/internal/api"
	"github.com/Mantelijo/whale-alert/internal/asset"
	"github.com/Mantelijo/whale-alert/internal/chain"
	"github.com/Mantelijo/whale-alert/internal/config"
	"github.com/Mantelijo/whale-alert/internal/hub"
	"github.com/Mantelijo/whale-alert/internal/metrics"
	"github.com/Mantelijo/whale-alert/internal/sink"
	"github.com/Mantelijo/whale-alert/internal/store"
	"github.com/Mantelijo/whale-alert/internal/whale"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func RunWhaleAlert() {
	// Init logger, the level is adjusted once config is loaded
	level := new(slog.LevelVar)
	logger := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	slog.SetDefault(slog.New(logger))

	if err := config.LoadRequiredEnv(); err != nil {
		slog.Error(
			"failed to load required env values",
			slog.Any("error", err),
		)
		os.Exit(1)
	}
	level.Set(config.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error(
			"service encountered critical error",
			slog.Any("error", err),
		)
		os.Exit(1)
	}
	slog.Info("whale alert stopped")
}

func run(ctx context.Context) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	threshold, err := config.Decimal(config.NATIVE_WHALE_THRESHOLD)
	if err != nil {
		return err
	}
	price, err := config.Decimal(config.NATIVE_USD_PRICE)
	if err != nil {
		return err
	}

	formatter := whale.NewFormatter(
		whale.NewStaticLabeler(whale.KnownAddresses),
		whale.StaticPrice(price),
		whale.WithNativeSymbol(config.Global.String(config.NATIVE_SYMBOL)),
	)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promRegistry)

	recent := store.NewRecentEvents(config.Global.Int(config.RECENT_EVENTS_CAPACITY))
	slog.Info("whale detection configured",
		slog.Int("tokens", registry.Len()),
		slog.String("native_symbol", formatter.NativeSymbol()),
		slog.String("native_threshold", threshold.String()),
		slog.Int("history_capacity", recent.Capacity()),
	)
	eventHub := hub.New(recent,
		hub.WithQueueSize(config.Global.Int(config.SUBSCRIBER_QUEUE_SIZE)),
		hub.WithMetrics(m),
	)

	callTimeout := config.Global.Duration(config.RPC_CALL_TIMEOUT)
	monitor, err := chain.NewBlockMonitor(
		config.Global.String(config.RPC_URL_ETHEREUM),
		registry,
		formatter,
		eventHub,
		chain.WithMetrics{Metrics: m},
		chain.WithNativeThreshold{Amount: whale.NativeUnits(threshold)},
		chain.WithReconnect{
			Backoff:     config.Global.Duration(config.RECONNECT_BACKOFF),
			MaxAttempts: config.Global.Int(config.MAX_RECONNECT_ATTEMPTS),
		},
		chain.WithCallTimeout{Timeout: callTimeout},
		chain.WithReceiptConcurrency{Limit: config.Global.Int(config.RECEIPT_CONCURRENCY)},
		chain.WithDedupSize{Size: config.Global.Int(config.DEDUP_CACHE_SIZE)},
	)
	if err != nil {
		return err
	}

	var apiServer api.Server = api.NewHttpServer(
		config.Global.String(config.API_BIND_ADDR),
		config.Global.String(config.API_PORT),
		recent,
		registry,
		chain.NewNetworkStatusReader(monitor, callTimeout, m),
		eventHub,
		api.WithNativeSymbol{Symbol: formatter.NativeSymbol()},
		api.WithMetricsHandler{Handler: promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})},
	)

	var kafkaSink *sink.KafkaSink
	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		kafkaSink, err = sink.NewKafkaSink(
			brokers,
			config.Global.String(config.KAFKA_TOPIC),
			nil,
			sink.WithMetrics(m),
		)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := monitor.Run(gctx); err != nil {
			return fmt.Errorf("block monitor failure: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := apiServer.Serve(); err != nil {
			return fmt.Errorf("failed to start api server: %w", err)
		}
		return nil
	})

	if kafkaSink != nil {
		g.Go(func() error {
			defer kafkaSink.Close()
			return kafkaSink.Run(gctx, eventHub)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			config.Global.Duration(config.SHUTDOWN_TIMEOUT),
		)
		defer cancel()

		// disconnects push subscribers, hijacked connections are not
		// covered by Shutdown
		eventHub.Close()
		return apiServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadRegistry() (*asset.Registry, error) {
	path := config.Global.String(config.TOKEN_REGISTRY_FILE)
	if path == "" {
		return asset.DefaultRegistry(), nil
	}

	registry, err := asset.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded token registry",
		slog.String("file", path),
		slog.Int("tokens", registry.Len()),
	)
	return registry, nil
}
