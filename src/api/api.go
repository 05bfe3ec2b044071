package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/stake-plus/spycat-agency/src/api/agency"
	"github.com/stake-plus/spycat-agency/src/api/breeds"
	"github.com/stake-plus/spycat-agency/src/api/config"
	"github.com/stake-plus/spycat-agency/src/api/data"
	"github.com/stake-plus/spycat-agency/src/api/metrics"
	"github.com/stake-plus/spycat-agency/src/api/store/gormstore"
	"github.com/stake-plus/spycat-agency/src/api/webserver"
	"github.com/stake-plus/spycat-agency/src/logging"
)

var version = "dev"

func main() {
	var (
		cfg       config.Config
		logLevel  string
		logFile   string
		logCloser = func() {}
	)

	app := &cli.Command{
		Name:    "spycats",
		Usage:   "Spy Cat Agency API",
		Version: version,
		Flags:   logFlags(&logLevel, &logFile),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			if cfg, err = config.Load(); err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			logger, closer, err := logging.New(logLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			logCloser()
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API (default)",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update the database schema and exit",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := data.ConnectMySQL(cfg.MySQLDSN, log.Logger)
					if err != nil {
						return err
					}
					if err := data.Migrate(db); err != nil {
						return err
					}
					log.Info().Msg("schema up to date")
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("spycats")
	}
}

// logFlags binds the logging settings. The flags, falling back to LOG_LEVEL and
// LOG_FILE, are their only source.
func logFlags(level, file *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal)",
			Sources:     cli.EnvVars("LOG_LEVEL"),
			Value:       "info",
			Destination: level,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to stdout)",
			Sources:     cli.EnvVars("LOG_FILE"),
			Destination: file,
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := data.ConnectMySQL(cfg.MySQLDSN, log.Logger)
	if err != nil {
		return err
	}
	if err := data.Migrate(db); err != nil {
		return err
	}
	store := gormstore.New(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNew(reg)

	checks := map[string]func(context.Context) error{"mysql": store.Ping}
	opts := []agency.Option{agency.WithLogger(log.With().Str("component", "agency").Logger())}

	var remote breeds.RemoteCache
	if cfg.RedisURL != "" {
		rdb, err := data.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		remote = data.NewBreedCache(rdb, cfg.BreedCacheTTL)
		opts = append(opts, agency.WithPublisher(data.NewEventStream(rdb)))
		checks["redis"] = func(ctx context.Context) error { return pingRedis(ctx, rdb) }
	}

	breedLog := log.With().Str("component", "breeds").Logger()
	classifier := breeds.NewCached(
		breeds.NewCatAPI(breeds.CatAPIConfig{
			BaseURL: cfg.CatAPIURL,
			APIKey:  cfg.CatAPIKey,
			Timeout: cfg.BreedTimeout,
			Logger:  breedLog,
		}),
		breeds.CacheConfig{
			Size:    cfg.BreedCacheSize,
			TTL:     cfg.BreedCacheTTL,
			Remote:  remote,
			Logger:  breedLog,
			Observe: m.BreedLookup,
		},
	)

	svc := agency.NewService(store, classifier, opts...)

	router := webserver.New(ctx, webserver.Deps{
		Config:   cfg,
		Service:  svc,
		Log:      log.With().Str("component", "http").Logger(),
		Metrics:  m,
		Gatherer: reg,
		Checks:   checks,
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSEnabled() {
			reloader, err := webserver.NewTLSReloader(ctx, cfg.SSLCert, cfg.SSLKey, log.Logger)
			if err != nil {
				errCh <- fmt.Errorf("tls: %w", err)
				return
			}
			httpSrv.TLSConfig = reloader.GetConfig()
			errCh <- httpSrv.ListenAndServeTLS("", "")
			return
		}
		errCh <- httpSrv.ListenAndServe()
	}()
	log.Info().Str("port", cfg.Port).Bool("tls", cfg.TLSEnabled()).Msg("Spy Cat Agency API listening")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	log.Info().Msg("shutting down")
	return httpSrv.Shutdown(shutCtx)
}

func pingRedis(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}
