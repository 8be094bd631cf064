package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/pages"
	"mercator-hq/callisto/pkg/server"
	"mercator-hq/callisto/pkg/telemetry/health"
	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/telemetry/metrics"
)

var runFlags struct {
	listen   []string
	workers  int
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Callisto server",
	Long: `Start the Callisto server with the specified configuration.

The server binds every configured endpoint and serves until SIGINT or SIGTERM.
A missing default config file is not an error: the built-in defaults apply.

Examples:
  # Start with default config
  callisto run

  # Start with custom config
  callisto run --config /etc/callisto/callisto.yaml

  # Replace the configured endpoints
  callisto run --listen 0.0.0.0:8080 --listen 0.0.0.0:8081

  # Validate config without starting server
  callisto run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd.Flags())
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&runFlags.listen, "listen", "l", nil, "endpoint to listen on as host:port (repeatable, replaces configured endpoints)")
	fs.IntVarP(&runFlags.workers, "workers", "w", 0, "override worker thread count (0 = one per CPU)")
	fs.StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	fs.BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)
	if err := config.Initialize(path); err != nil {
		return cli.NewConfigError(path, err)
	}
	cfg := *config.GetConfig()

	if err := applyRunFlags(cmd, &cfg); err != nil {
		return cli.NewConfigError(path, err)
	}
	config.SetConfig(&cfg)

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	sink, closeSink, err := logging.OpenSink(cfg.Telemetry.Logging.Output)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer closeSink()

	a, err := newApp(&cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	a.start()

	stop := cli.OnShutdown(a.rt.Context(), func(os.Signal) { a.shutdown() })
	defer stop()

	a.drain(sink)

	if err := a.srv.Wait(cfg.Server.ShutdownTimeout); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// applyRunFlags copies explicitly set flags over cfg and revalidates it.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("listen") {
		eps := make([]config.EndpointConfig, 0, len(runFlags.listen))
		for _, s := range runFlags.listen {
			ep, err := config.ParseEndpoint(s)
			if err != nil {
				return fmt.Errorf("--listen: %w", err)
			}
			eps = append(eps, ep)
		}
		cfg.Server.Endpoints = eps
	}
	if flags.Changed("workers") {
		cfg.Server.Workers = runFlags.workers
	}
	if flags.Changed("log-level") {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	return config.Validate(cfg)
}

func endpoints(cfg *config.Config) []server.Endpoint {
	eps := make([]server.Endpoint, 0, len(cfg.Server.Endpoints))
	for _, ep := range cfg.Server.Endpoints {
		eps = append(eps, server.Endpoint{Address: ep.Address, Port: ep.Port})
	}
	return eps
}

// app is one running server process: its log pipeline, runtime, listeners
// and optional side services.
type app struct {
	cfg      *config.Config
	instance string

	logs      *logging.Context
	logger    *slog.Logger
	rt        *server.Runtime
	srv       *server.Server
	pages     *pages.Builder
	collector *metrics.Collector
	admin     *server.Admin
	stats     *server.StatsReporter
}

func newApp(cfg *config.Config) (*app, error) {
	logs, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	logger := logs.Logger()

	set := pages.DefaultSet()
	if cfg.Pages.Dir != "" {
		if set, err = pages.LoadSet(cfg.Pages.Dir); err != nil {
			return nil, err
		}
	}

	a := &app{
		cfg:      cfg,
		instance: uuid.NewString(),
		logs:     logs,
		logger:   logger,
		rt:       server.NewRuntime(cfg.Server.Workers, logger),
		pages:    pages.NewBuilder(set),
	}

	opts := server.Options{
		Endpoints: endpoints(cfg),
		Responder: a.pages,
		Logger:    logger,
	}
	if cfg.Telemetry.Metrics.Enabled {
		a.collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
		a.collector.SetBuildInfo(Version, a.instance)
		a.collector.TrackTasks(a.rt.Active)
		opts.Observer = a.collector
	}
	a.srv = server.New(a.rt, opts)

	if schedule := cfg.Telemetry.Stats.Schedule; schedule != "" {
		a.stats, err = server.NewStatsReporter(schedule, a.srv, a.rt, logs.Queue().Len, logger)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

// start logs the worker count, binds the endpoints and launches the side
// services. Failures of side services are logged; the server keeps going.
func (a *app) start() {
	a.logger.Info(fmt.Sprintf("%d working threads", a.rt.Workers()))
	a.logger.Info(fmt.Sprintf("instance %s", a.instance))

	ctx := a.rt.Context()
	if a.srv.Start(ctx) == 0 {
		a.logger.Warn("no endpoint could be bound")
	}

	if a.collector != nil {
		checker := health.New(0)
		server.RegisterReadiness(checker, a.srv, a.logs.Queue().Closed)

		admin, err := server.ListenAdmin(ctx, server.AdminOptions{
			Address:     a.cfg.Telemetry.Metrics.ListenAddress,
			MetricsPath: a.cfg.Telemetry.Metrics.Path,
			Metrics:     a.collector.Handler(),
			Checker:     checker,
			Build:       buildInfo(a.instance),
		}, a.logger)
		if err != nil {
			a.logger.Error(fmt.Sprintf("admin error: %v", err))
		} else {
			a.admin = admin
			a.rt.Spawn("admin", admin.Serve)
		}
	}

	if a.cfg.Pages.Watch {
		w, err := pages.NewWatcher(a.cfg.Pages.Dir, a.pages, a.logger)
		if err != nil {
			a.logger.Error(fmt.Sprintf("pages watcher error: %v", err))
		} else {
			a.rt.Spawn("pages watcher", w.Run)
		}
	}

	if a.stats != nil {
		if err := a.stats.Start(); err != nil {
			a.logger.Error(fmt.Sprintf("stats error: %v", err))
		}
	}
}

// shutdown closes the log queue and then stops the runtime. Anything
// logged after this point is not written.
func (a *app) shutdown() {
	a.logger.Info("terminating...")
	if a.stats != nil {
		a.stats.Stop()
	}
	a.logs.Close()
	a.rt.Stop()
}

// drain writes log lines to sink from the calling goroutine, pinned to its
// OS thread, until the queue is closed and empty.
func (a *app) drain(sink io.Writer) int {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var obs logging.DrainObserver
	if a.collector != nil {
		obs = a.collector
	}
	return a.logs.NewDrain(sink, obs).Run()
}
