// Command scribed serves the transcription HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kbukum/scribe/bootstrap"
	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/media"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/pipeline"
	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/redis"
	"github.com/kbukum/scribe/server"
	"github.com/kbukum/scribe/server/endpoint"
	"github.com/kbukum/scribe/storage"
	"github.com/kbukum/scribe/storage/local"
	"github.com/kbukum/scribe/transcription"
	tlocal "github.com/kbukum/scribe/transcription/local"
	"github.com/kbukum/scribe/transcription/openai"
	"github.com/kbukum/scribe/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(version.GetFullVersion())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scribed: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scribed: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), app); err != nil {
		app.Logger.Fatal("Service exited with error", logger.Fields(logger.FieldError, err.Error()))
	}
}

func run(ctx context.Context, app *bootstrap.App[*config.Config]) error {
	cfg := app.Cfg
	log := app.Logger
	log.Info("Configuration loaded", version.GetVersionInfo().LogFields())

	var pipeOpts []pipeline.Option
	if cfg.Observability.Enabled {
		metrics, err := initTelemetry(ctx, app)
		if err != nil {
			return err
		}
		pipeOpts = append(pipeOpts, pipeline.WithMetrics(metrics))
	}

	var backends []provider.Provider
	switch cfg.ModeValue() {
	case transcription.ModeRemote:
		ff := media.New(cfg.Media, log)
		remote := openai.NewProvider(cfg.OpenAI, log)
		pipeOpts = append(pipeOpts, pipeline.WithMedia(ff), pipeline.WithRemote(remote))
		backends = append(backends, remote, ff)
	case transcription.ModeLocal:
		whisper := tlocal.NewProvider(cfg.Local, log)
		pipeOpts = append(pipeOpts, pipeline.WithLocal(whisper))
		backends = append(backends, whisper)
	}

	core, err := pipeline.New(cfg.ModeValue(), cfg.Pipeline, log, pipeOpts...)
	if err != nil {
		return err
	}

	uploads, err := local.NewStorage(cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("upload storage: %w", err)
	}
	intake, err := storage.NewIntake(uploads, cfg.Upload, log)
	if err != nil {
		return err
	}

	var handlerOpts []server.HandlerOption
	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case config.CacheBackendRedis:
			cache := redis.NewComponent(cfg.Cache.Redis, log, redis.Optional())
			if err := app.RegisterComponent(cache); err != nil {
				return err
			}
			store := redis.NewComponentStore[server.CachedTranscript](cache, cfg.Cache.KeyPrefix)
			handlerOpts = append(handlerOpts, server.WithCache(store, cfg.Cache.TTL))
		case config.CacheBackendMemory:
			store := provider.NewMemoryStore[server.CachedTranscript](provider.WithMaxEntries(cfg.Cache.MaxEntries))
			handlerOpts = append(handlerOpts, server.WithCache(store, cfg.Cache.TTL))
		}
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	server.NewHandlers(core, intake, log, handlerOpts...).Register(srv.GinEngine())
	srv.RegisterDefaultEndpoints(
		endpoint.ServiceInfo{Name: cfg.Name, Version: cfg.Version, Mode: core.Label()},
		func(ctx context.Context) []observability.Health {
			results := app.Components.HealthAll(ctx)
			for _, b := range backends {
				results = append(results, provider.Health(ctx, b))
			}
			return results
		},
	)
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	app.Summary.SetMode(core.Label())
	for _, r := range srv.Routes() {
		app.Summary.TrackRoute(r.Method, r.Path)
	}

	return app.Run(ctx)
}

// initTelemetry starts the OTLP trace and metric exporters and registers
// their shutdown with the app.
func initTelemetry(ctx context.Context, app *bootstrap.App[*config.Config]) (*observability.JobMetrics, error) {
	obsCfg := app.Cfg.Observability

	tp, err := observability.InitTracer(ctx, &obsCfg)
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}
	mp, err := observability.InitMeter(ctx, &obsCfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("meter: %w", err)
	}

	app.OnStop(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(ctx); err != nil {
			return err
		}
		return tp.Shutdown(ctx)
	})

	return observability.NewJobMetrics(observability.Meter(obsCfg.ServiceName))
}
