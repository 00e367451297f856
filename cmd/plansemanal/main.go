// Plan Semanal: weekly meal plan viewer and shopping list generator.
//
// Shows the week's meals in a terminal UI, derives the consolidated
// shopping list for the plan, and can export it or serve it over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plansemanal/plansemanal/internal/api"
	"github.com/plansemanal/plansemanal/internal/config"
	"github.com/plansemanal/plansemanal/internal/database"
	"github.com/plansemanal/plansemanal/internal/database/seed"
	"github.com/plansemanal/plansemanal/internal/render"
	"github.com/plansemanal/plansemanal/internal/repository"
	"github.com/plansemanal/plansemanal/internal/services/planning"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
	"github.com/plansemanal/plansemanal/internal/tui"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type options struct {
	configPath  string
	migrateOnly bool
	seedOnly    bool
	debug       bool
	export      string
	planID      string
	serve       string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.migrateOnly, "migrate-only", false, "Run migrations and exit")
	flag.BoolVar(&opts.seedOnly, "seed", false, "Load the bundled weekly plan and exit")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.StringVar(&opts.export, "export", "", "Print the shopping list as text, json or yaml and exit")
	flag.StringVar(&opts.planID, "plan", "", "Plan id to use (defaults to the configured or latest plan)")
	flag.StringVar(&opts.serve, "serve", "", "Serve the HTTP API on addr instead of the TUI (\"config\" uses the configured address)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Plan Semanal version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	cfg, cfgPath, err := config.Load(opts.configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return fmt.Errorf("applying environment: %w", err)
	}
	if opts.planID != "" {
		cfg.Planner.PlanID = opts.planID
	}

	closeLog, err := setupLogging(cfg, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("plansemanal starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	dbPath, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("ensuring data directory: %w", err)
	}

	db, err := database.Open(dbPath, &cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		slog.Info("closing database")
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	result, err := migrator.MigrateUp(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if len(result.Applied) > 0 {
		slog.Info("applied migrations",
			"count", len(result.Applied),
			"to_version", result.TargetVersion,
		)
	}

	if opts.migrateOnly {
		slog.Info("migrations complete, exiting")
		return nil
	}

	// An empty database always gets the bundled plan so the first run has
	// something to show.
	if err := seedPlan(ctx, db); err != nil {
		return err
	}
	if opts.seedOnly {
		slog.Info("seed complete, exiting")
		return nil
	}

	builder, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	switch {
	case opts.export != "":
		return exportList(ctx, os.Stdout, db, cfg, builder, opts.export)
	case opts.serve != "":
		return serve(ctx, db, cfg, builder, opts.serve)
	}

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI", "plan_id", cfg.Planner.PlanID, "scheme", cfg.Display.ColorScheme)
	if err := tui.Run(ctx, db, cfg, builder); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("plansemanal shutdown complete")
	return nil
}

// setupLogging installs the default logger. Logs go to the configured file
// as JSON, or to stderr as text when no file is set. Stdout stays free for
// exports.
func setupLogging(cfg *config.Config, opts options) (func(), error) {
	logLevel := slog.LevelInfo
	if opts.debug {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			logLevel = slog.LevelDebug
		case config.LogLevelWarn:
			logLevel = slog.LevelWarn
		case config.LogLevelError:
			logLevel = slog.LevelError
		}
	}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	var handler slog.Handler
	closeFn := func() {}

	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		closeFn = func() { logFile.Close() }
		handler = slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}

func seedPlan(ctx context.Context, db *database.DB) error {
	data, err := seed.Load()
	if err != nil {
		return fmt.Errorf("loading seed data: %w", err)
	}

	seeder := seed.NewSeeder(db, repository.NewPlanRepository(db.DB), repository.NewRecipeRepository(db.DB))
	seeded, err := seeder.Seed(ctx, data)
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if seeded {
		slog.Info("loaded bundled plan",
			"plan_id", data.Plan.ID,
			"recipes", len(data.Recipes),
		)
	}
	return nil
}

func newBuilder(cfg *config.Config) (*shopping.Builder, error) {
	if cfg.Planner.LexiconPath == "" {
		return shopping.DefaultBuilder()
	}

	lex, err := config.LoadLexicon(cfg.Planner.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}
	slog.Debug("using custom lexicon", "path", cfg.Planner.LexiconPath)
	return shopping.NewBuilder(lex), nil
}

func exportList(ctx context.Context, w io.Writer, db *database.DB, cfg *config.Config, builder *shopping.Builder, formatName string) error {
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	plans := planning.NewService(db.DB, cfg.Planner.PlanID)
	lists := shopping.NewService(db.DB, plans, builder)

	plan, list, err := lists.List(ctx, "")
	if err != nil {
		return fmt.Errorf("building shopping list: %w", err)
	}

	checked, err := lists.Checked(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("loading checked items: %w", err)
	}

	doc := render.Build(plan, list, builder.Display(), render.Options{
		HideAGusto: cfg.Planner.HideAGusto,
		Checked:    checked,
	})
	return render.Write(w, format, doc)
}

func serve(ctx context.Context, db *database.DB, cfg *config.Config, builder *shopping.Builder, addr string) error {
	if addr == "config" {
		addr = cfg.Server.Addr
	}

	plans := planning.NewService(db.DB, cfg.Planner.PlanID)
	router := api.NewRouter(cfg.Server, api.Deps{
		Planning: plans,
		Shopping: shopping.NewService(db.DB, plans, builder),
		Health:   db,
		Version:  Version,
	})

	slog.Info("starting HTTP API", "addr", addr)
	return api.Serve(ctx, addr, router)
}
