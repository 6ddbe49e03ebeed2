package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/tick/internal/config"
	"github.com/tOgg1/tick/internal/db"
	"github.com/tOgg1/tick/internal/events"
	"github.com/tOgg1/tick/internal/logging"
	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/storage"
	"github.com/tOgg1/tick/internal/todo"
)

const eventLogSubscriber = "event-log"

// app bundles the runtime for one command invocation.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	kv        storage.KV
	gateway   *storage.Gateway
	writer    *storage.Writer
	store     *todo.Store
	publisher *events.InMemoryPublisher
	events    *db.EventRepository
	logFile   *os.File
}

// appMode selects how the runtime logs and writes.
type appMode int

const (
	// modeCommand writes every mutation synchronously and logs to stderr.
	modeCommand appMode = iota
	// modeInteractive debounces writes and keeps logs off the screen.
	modeInteractive
)

func openApp(ctx context.Context, cfg *config.Config, mode appMode) (*app, error) {
	a := &app{cfg: cfg}
	if err := a.initLogging(mode); err != nil {
		return nil, err
	}
	a.logger = logging.Component("tick")

	if cfg.Storage.Backend != config.BackendMemory {
		if err := cfg.EnsureDirectories(); err != nil {
			a.closeLog()
			return nil, err
		}
	}

	kv, err := storage.Open(ctx, storage.Options{
		Backend:       cfg.Storage.Backend,
		Path:          cfg.StoragePath(),
		BusyTimeoutMs: cfg.Storage.BusyTimeoutMs,
		Logger:        logging.Component("db"),
	})
	if err != nil {
		a.closeLog()
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	a.kv = kv

	a.gateway = storage.NewGateway(kv,
		storage.WithKey(cfg.Storage.Key),
		storage.WithGatewayLogger(logging.Component("storage")),
	)

	debounce := time.Duration(0)
	if mode == modeInteractive {
		debounce = cfg.Storage.Debounce
	}
	a.writer = storage.NewWriter(a.gateway,
		storage.WithDebounce(debounce),
		storage.WithWriterLogger(logging.Component("writer")),
	)

	publisherOpts := []events.PublisherOption{events.WithLogger(logging.Component("events"))}
	if sqliteKV, ok := kv.(*storage.SQLiteKV); ok && cfg.Storage.History {
		a.events = db.NewEventRepository(sqliteKV.DB())
		publisherOpts = append(publisherOpts, events.WithRepository(a.events))
	}
	a.publisher = events.NewInMemoryPublisher(publisherOpts...)
	if err := a.publisher.Subscribe(eventLogSubscriber, events.Filter{}, events.LogHandler(logging.Component("events"))); err != nil {
		a.logger.Warn().Err(err).Msg("event log subscriber unavailable")
	}

	filter, err := models.ParseFilter(cfg.TUI.DefaultFilter)
	if err != nil {
		filter = models.FilterAll
	}

	tasks := a.gateway.Load(ctx)
	a.store = todo.New(tasks,
		todo.WithCheckpointer(a.writer),
		todo.WithPublisher(a.publisher),
		todo.WithLogger(logging.Component("store")),
		todo.WithFilter(filter),
	)
	a.logger.Debug().
		Str("config", cfg.Source).
		Str("backend", cfg.Storage.Backend).
		Str("path", cfg.StoragePath()).
		Int("tasks", len(tasks)).
		Msg("task list loaded")
	return a, nil
}

func (a *app) initLogging(mode appMode) error {
	logCfg := logging.Config{
		Level:        a.cfg.Logging.Level,
		Format:       a.cfg.Logging.Format,
		Output:       os.Stderr,
		EnableCaller: a.cfg.Logging.EnableCaller,
	}
	if a.cfg.Logging.File != "" {
		file, err := logging.OpenFile(a.cfg.Logging.File)
		if err != nil {
			return Exitf(ExitCodeFailure, "open log file: %v", err)
		}
		a.logFile = file
		logCfg.Output = file
	} else if mode == modeInteractive {
		logCfg.Output = io.Discard
	}
	logging.Init(logCfg)
	return nil
}

func (a *app) close(ctx context.Context) {
	logger := logging.FromContext(ctx)
	if a.writer != nil {
		a.writer.Close(ctx)
		logger.Debug().Int("writes", a.writer.Writes()).Msg("task list flushed")
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}
	a.closeLog()
}

func (a *app) closeLog() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// withApp loads config, opens the runtime, runs fn and closes everything.
func withApp(ctx context.Context, opts *rootOptions, mode appMode, fn func(*app) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg, mode)
	if err != nil {
		return err
	}
	defer a.close(logging.WithContext(ctx, a.logger))
	return fn(a)
}
