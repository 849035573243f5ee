package app

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/dshills/keycast/internal/capture"
	"github.com/dshills/keycast/internal/config"
	"github.com/dshills/keycast/internal/input/chord"
	"github.com/dshills/keycast/internal/pairing"
	"github.com/dshills/keycast/internal/playback"
	"github.com/dshills/keycast/internal/server"
	"github.com/dshills/keycast/internal/shortcut"
	"github.com/dshills/keycast/internal/store"
)

// Application is the central coordinator for the keycast daemon. It wires
// the shortcut store, the capture engine, pairing, and the companion
// server, and manages their lifecycle.
type Application struct {
	cfg config.Config
	log *Logger

	// Persistence
	store   *store.FileStore
	manager *shortcut.Manager

	// Capture
	keys       *chord.Bridge
	controller *capture.Controller

	// Companion surface
	player    *playback.Player
	server    *server.Server
	responder *pairing.Responder
	endpoint  pairing.Config

	unwatch func()

	running atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty loads
	// defaults.
	ConfigPath string

	// Name is the daemon name announced to companions. Defaults to the
	// hostname.
	Name string

	// Driver injects the OS key synthesis backend. Defaults to a no-op
	// driver, which keeps remote execution harmless on unsupported hosts.
	Driver playback.Driver

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Logging
	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(cfg.LogLevel)
	if app.opts.LogLevel != "" {
		logCfg.Level = ParseLogLevel(app.opts.LogLevel)
	}
	app.log = NewLogger(logCfg)

	// 3. Shortcut store
	path, err := cfg.StorePath()
	if err != nil {
		return &InitError{Component: "store", Err: err}
	}
	app.store, err = store.Open(path)
	if err != nil {
		return &InitError{Component: "store", Err: err}
	}
	app.manager = shortcut.NewManager(app.store,
		shortcut.WithLogger(app.log.WithComponent("shortcuts")))

	// 4. Capture engine. The bridge is fed by companion key events; the
	// controller attaches to it only while a capture surface is active.
	app.keys = chord.NewBridge()
	app.controller = capture.NewController(app.keys,
		capture.WithDebounce(cfg.Debounce()))

	// 5. Playback
	driver := app.opts.Driver
	if driver == nil {
		driver = playback.NopDriver{}
	}
	app.player = playback.NewPlayer(driver,
		playback.WithInterval(cfg.PlaybackInterval()))

	// 6. Companion server
	app.server = server.New(app.store, app.player,
		server.WithLogger(app.log.WithComponent("server")),
		server.WithKeyBridge(app.keys))
	app.unwatch = app.store.OnChange(app.server.Broadcast)

	// 7. Pairing endpoint and discovery responder
	app.endpoint = pairing.ServerConfig(cfg.WSPort)
	name := app.opts.Name
	if name == "" {
		if host, err := os.Hostname(); err == nil {
			name = host
		} else {
			name = "keycast"
		}
	}
	app.responder = pairing.NewResponder(name, app.endpoint.Port, cfg.UDPPort)

	return nil
}

// Run starts the discovery responder and the companion server and blocks
// until the context is cancelled or the server fails.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := app.responder.Run(ctx); err != nil {
			app.log.Warn("discovery responder: %v", err)
		}
	}()

	app.log.Info("pairing endpoint %s", app.endpoint.URL())
	return app.server.Run(ctx, app.endpoint.DisplayAddress())
}

// IsRunning reports whether the application loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// shutdown releases component resources in reverse bootstrap order.
func (app *Application) shutdown() {
	if app.unwatch != nil {
		app.unwatch()
	}
	app.controller.Close()
	app.log.Info("shut down")
}

// Config returns the loaded configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Log returns the application logger.
func (app *Application) Log() *Logger {
	return app.log
}

// Shortcuts returns the shortcut manager.
func (app *Application) Shortcuts() *shortcut.Manager {
	return app.manager
}

// Capture returns the capture controller driving the recording UI.
func (app *Application) Capture() *capture.Controller {
	return app.controller
}

// Keys returns the bridge companion key events flow through.
func (app *Application) Keys() *chord.Bridge {
	return app.keys
}

// Pairing returns the endpoint companions connect to.
func (app *Application) Pairing() pairing.Config {
	return app.endpoint
}

// Server returns the companion server.
func (app *Application) Server() *server.Server {
	return app.server
}
