package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/envioscan/internal/cli"
	"github.com/alexanderramin/envioscan/internal/config"
	"github.com/alexanderramin/envioscan/internal/db"
	"github.com/alexanderramin/envioscan/internal/export"
	"github.com/alexanderramin/envioscan/internal/importer"
	"github.com/alexanderramin/envioscan/internal/insight"
	"github.com/alexanderramin/envioscan/internal/llm"
	"github.com/alexanderramin/envioscan/internal/logging"
	"github.com/alexanderramin/envioscan/internal/render"
	"github.com/alexanderramin/envioscan/internal/repository"
	"github.com/alexanderramin/envioscan/internal/storage"
	"github.com/alexanderramin/envioscan/internal/workspace"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logging.New(logging.Options{
		Path:   cfg.Log.Path,
		Level:  cfg.Log.Level,
		Stderr: cfg.Log.Stderr,
	})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	kvRepo := repository.NewSQLiteKVRepo(database)
	batchRepo := repository.NewSQLiteBatchRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	raster := render.NewChromeRasterizer(
		cfg.Chrome.ExecPath,
		time.Duration(cfg.Chrome.TimeoutMs)*time.Millisecond,
		cfg.Chrome.Width,
		cfg.Chrome.Height,
	)

	app := &cli.App{
		Workspace: workspace.Open(ctx, kvRepo, log),
		Batch:     batchRepo,
		UoW:       uow,
		Importer:  importer.New(log),
		Exporter:  export.NewExporter(raster),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// AI features stay off unless enabled; commands report why.
	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewZapObserver(log)
	}
	client, err := llm.NewClient(cfg.LLM, observer)
	if err != nil {
		app.InsightErr = err
	} else {
		app.Insight = insight.NewService(client)
	}

	if cfg.Storage.Enabled() {
		store, err := storage.NewObjectStore(storage.ObjectOptions{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Warn("object storage unavailable", zap.Error(err))
		} else {
			app.Objects = store
		}
	}

	log.Debug("starting", zap.String("db", cfg.DBPath), zap.Bool("ai", app.Insight != nil))

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
