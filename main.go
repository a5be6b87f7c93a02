package main

import (
	"codeberg.org/miketth/plancktl/pkg/keymap"
	"codeberg.org/miketth/plancktl/pkg/leader"
	"codeberg.org/miketth/plancktl/pkg/matrixlink"
	"codeberg.org/miketth/plancktl/pkg/planck"
	"codeberg.org/miketth/plancktl/pkg/settings/json"
	"codeberg.org/miketth/plancktl/pkg/settings/memory"
	"codeberg.org/miketth/plancktl/pkg/settings/sqlite"
	"codeberg.org/miketth/plancktl/pkg/terminal"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

type options struct {
	debug         bool
	logPath       string
	storeKind     string
	storePath     string
	keymapPath    string
	source        string
	socketPath    string
	leaderTimeout time.Duration
	scanInterval  time.Duration
	macroInterval time.Duration
}

func parseFlags() options {
	var opts options
	flag.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flag.StringVar(&opts.logPath, "log", "", "log file (default stdout, or a state file with -source terminal)")
	flag.StringVar(&opts.storeKind, "store", "sqlite", "settings store: memory, json or sqlite")
	flag.StringVar(&opts.storePath, "store-path", "", "settings file (default in the XDG data dir)")
	flag.StringVar(&opts.keymapPath, "keymap", "", "XML keymap replacing the built-in planck layout")
	flag.StringVar(&opts.source, "source", "socket", "key event source: socket or terminal")
	flag.StringVar(&opts.socketPath, "socket", "", "matrix link socket (default $PLANCKTL_SOCKET or the XDG runtime dir)")
	flag.DurationVar(&opts.leaderTimeout, "leader-timeout", leader.DefaultTimeout, "time allowed between leader sequence keys")
	flag.DurationVar(&opts.scanInterval, "scan-interval", planck.DefaultScanInterval, "how often timeouts are polled")
	flag.DurationVar(&opts.macroInterval, "macro-interval", 0, "pause after each macro key transition")
	flag.Parse()
	return opts
}

func run() error {
	opts := parseFlags()

	logPath := opts.logPath
	if logPath == "" && opts.source == "terminal" {
		path, err := xdg.StateFile("plancktl/plancktl.log")
		if err != nil {
			return fmt.Errorf("get log path: %w", err)
		}
		logPath = path
	}

	log, err := newLogger(opts.debug, logPath)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	km := keymap.Planck()
	if opts.keymapPath != "" {
		km, err = keymap.ParseKeymapFile(opts.keymapPath)
		if err != nil {
			return fmt.Errorf("parse keymap: %w", err)
		}
	}

	store, saveLooper, closeStore, err := openStore(opts, log)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	defer closeStore()

	cfg := planck.Config{
		Keymap:        km,
		Settings:      store,
		MacroInterval: opts.macroInterval,
		LeaderTimeout: opts.leaderTimeout,
		Log:           log,
	}

	var source planck.EventSource
	switch opts.source {
	case "terminal":
		term, err := terminal.New(km)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer term.Close()

		source = term
		cfg.Output = term
		cfg.Audio = term

	case "socket":
		socketPath := opts.socketPath
		if socketPath == "" {
			socketPath, err = matrixlink.SocketPath()
			if err != nil {
				return fmt.Errorf("get socket path: %w", err)
			}
		}

		client, err := matrixlink.Connect(socketPath, log.Named("matrixlink"))
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer client.Close()

		source = client
		cfg.Output = client

	default:
		return fmt.Errorf("unknown source %q", opts.source)
	}

	dispatcher, err := planck.NewDispatcher(cfg)
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}

	dispatcher.Start()
	defer dispatcher.Shutdown()

	log.Infow("started plancktl", "source", opts.source, "store", opts.storeKind)

	errChan := make(chan error, 3)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := dispatcher.ProcessEvents(ctx, source, opts.scanInterval)
		if err != nil {
			errChan <- fmt.Errorf("process events: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	if saveLooper != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := saveLooper(ctx)
			if err != nil {
				errChan <- fmt.Errorf("save settings: %w", err)
			}
		}()
	}

	err = <-errChan
	stop()
	wg.Wait()

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, terminal.ErrQuit):
		log.Info("shutting down")
		return nil
	case err != nil:
		return err
	}

	return nil
}

// openStore returns the settings store, an optional background save loop
// and a close function.
func openStore(opts options, log *zap.SugaredLogger) (planck.SettingsStore, func(context.Context) error, func(), error) {
	noop := func() {}

	path := opts.storePath
	if path == "" && opts.storeKind != "memory" {
		name := "plancktl/settings.db"
		if opts.storeKind == "json" {
			name = "plancktl/settings.json"
		}

		var err error
		path, err = xdg.DataFile(name)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("get data file: %w", err)
		}
	}

	switch opts.storeKind {
	case "memory":
		return memory.NewSettingsStore(), nil, noop, nil

	case "json":
		store, err := json.NewSettingsStore(path)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("create json store: %w", err)
		}
		looper := func(ctx context.Context) error {
			return store.SaveLooper(ctx, time.Minute)
		}
		// SaveLooper closes the file
		return store, looper, noop, nil

	case "sqlite":
		store, err := sqlite.NewSettingsStore(path, log.Named("sqlite"))
		if err != nil {
			return nil, nil, noop, fmt.Errorf("create sqlite store: %w", err)
		}
		return store, nil, func() { _ = store.Close() }, nil
	}

	return nil, nil, noop, fmt.Errorf("unknown store %q", opts.storeKind)
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Juggling layers and desktops")

	// notify watchdog
	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool, path string) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	if path != "" {
		loggerConfig.OutputPaths = []string{path}
	}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
