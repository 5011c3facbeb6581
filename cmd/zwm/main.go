package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
	"github.com/zlateski/zwm/internal/build"
	"github.com/zlateski/zwm/internal/bus"
	"github.com/zlateski/zwm/internal/config"
	"github.com/zlateski/zwm/internal/control"
	"github.com/zlateski/zwm/internal/drw"
	"github.com/zlateski/zwm/internal/wm"
	"github.com/zlateski/zwm/pkg/sutureext"
)

type Options struct {
	Debug   bool   `doc:"enable debug logging"`
	Host    string `doc:"control API host" default:"127.0.0.1"`
	Port    int    `doc:"control API port" default:"8181"`
	Config  string `doc:"config file" default:".zwm.yaml"`
	NoServe bool   `doc:"disable the control API server"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			return run(ctx, options)
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func run(ctx context.Context, options *Options) error {
	configFilePath, err := filepath.Abs(options.Config)
	if err != nil {
		return err
	}

	store, err := config.NewStore(config.NewYAML(configFilePath))
	if err != nil {
		return err
	}
	fileCfg, err := store.GetConfig()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(fileCfg)
	if err != nil {
		return err
	}

	display, err := wm.NewXDisplay([2]string{
		fileCfg.Colors.Normal.Border,
		fileCfg.Colors.Selected.Border,
	})
	if err != nil {
		return err
	}
	defer display.Close()

	surface, err := drw.New(display.Conn(), display.Screen(), fileCfg.Font,
		[2]drw.ColorScheme{
			{FG: fileCfg.Colors.Normal.FG, BG: fileCfg.Colors.Normal.BG},
			{FG: fileCfg.Colors.Selected.FG, BG: fileCfg.Colors.Selected.BG},
		})
	if err != nil {
		return err
	}

	hub := bus.NewHub[wm.Snapshot]()
	manager := wm.New(display, surface, cfg, hub)
	if err := manager.Setup(); err != nil {
		return err
	}
	manager.Scan()
	runAutostart()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !options.NoServe {
		super := sutureext.NewSimple("zwm")
		sutureext.Add(super, control.NewServer(options.Host, options.Port, hub))
		super.ServeBackground(ctx)
	}

	err = manager.Run(ctx, display.Events(ctx))
	if errors.Is(err, wm.ErrRestart) {
		slog.Info("Restarting")
		cancel()
		display.Close()
		return restartSelf()
	}
	return err
}

// restartSelf replaces the process with a fresh copy of itself so a restart
// picks up a new binary and config.
func restartSelf() error {
	self, err := os.Executable()
	if err != nil {
		return err
	}
	return syscall.Exec(self, os.Args, os.Environ())
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
