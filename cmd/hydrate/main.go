package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gen2brain/beeep"
	"github.com/jmhodges/clock"
	"github.com/lixenwraith/hydrate/app"
	"github.com/lixenwraith/hydrate/audio"
	"github.com/lixenwraith/hydrate/config"
	"github.com/lixenwraith/hydrate/constants"
	"github.com/lixenwraith/hydrate/engine"
	"github.com/lixenwraith/hydrate/hydration"
	"github.com/lixenwraith/hydrate/logger"
	"github.com/lixenwraith/hydrate/reminder"
	"github.com/lixenwraith/hydrate/render"
	"github.com/lixenwraith/hydrate/terminal"
	"github.com/lixenwraith/hydrate/tip"
	"go.uber.org/zap"
)

var (
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/hydrate.log")
	durationFlag  = flag.Int("duration", 0, "Depletion timer in minutes (30-240, step 15)")
	modeFlag      = flag.String("mode", "", "Render mode: outline, volume")
	bodyFlag      = flag.String("body", "", "Body variant: generic, slim, muscular")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	envFileFlag   = flag.String("env", ".env", "Optional env file with HYDRATE_* settings")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the widget crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mHYDRATE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*envFileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	opts, err := resolveOptions(cfg, *durationFlag, *bodyFlag, *modeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flag: %v\n", err)
		os.Exit(2)
	}
	colorMode, err := terminal.ParseColorMode(*colorModeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flag: %v\n", err)
		os.Exit(2)
	}

	log, logFile := setupLogging(*debugFlag, logger.Options{Level: cfg.LoggerLevel, Format: cfg.LoggerFormat})
	if logFile != nil {
		defer logFile.Close()
	}
	defer log.Sync()

	if err := run(cfg, opts, colorMode, log); err != nil {
		log.Error("exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "hydrate: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, opts app.Options, colorMode terminal.ColorMode, log *zap.Logger) error {
	if err := terminal.ApplyColorMode(colorMode); err != nil {
		return fmt.Errorf("color mode: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	beeep.AppName = cfg.AppName

	// Audio failure leaves the audio channel silent
	var cue reminder.CuePlayer
	sounds := audio.NewSoundManager(audio.NewAudioConfig(cfg.AudioEnabled, cfg.AudioVolume, cfg.AudioSampleRate))
	if err := sounds.Initialize(); err != nil {
		if !errors.Is(err, audio.ErrDisabled) {
			log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		}
	} else {
		cue = sounds
		defer sounds.Cleanup()
	}

	var tips tip.Generator
	if cfg.TipConfigured() {
		tips = tip.NewClient(tip.ClientConfig{
			BaseURL: cfg.TipBaseURL,
			Model:   cfg.TipModel,
			APIKey:  cfg.TipAPIKey,
			Timeout: cfg.TipTimeout,
		})
	}

	loop := engine.NewLoop(constants.FrameUpdateInterval, log.Named("loop"))
	// Dependency Injection: keeps engine independent of terminal restoration
	loop.SetCrashHandler(func(r any) {
		screen.Fini()
		terminal.EmergencyReset(os.Stdout)
		// Use \r\n for raw mode compatibility to avoid zig-zag output
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := app.New(ctx, app.Deps{
		Scheduler:  engine.NewTickerScheduler(loop),
		Poster:     loop,
		Screen:     screen,
		Tips:       tips,
		TipTimeout: cfg.TipTimeout,
		Cue:        cue,
		Clock:      clock.New(),
		Logger:     log,
	}, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		return err
	}
	log.Info("hydrate started",
		zap.Int("duration_minutes", w.State().DurationMinutes),
		zap.Stringer("variant", w.State().Variant),
		zap.Stringer("color_mode", colorMode),
		zap.Bool("tips", tips != nil),
		zap.Bool("audio", cue != nil))

	err = loop.Run(ctx, screen, w)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resolveOptions merges flags over the environment configuration
func resolveOptions(cfg *config.Config, duration int, body, mode string) (app.Options, error) {
	opts := app.Options{DurationMinutes: cfg.DurationMinutes}

	if duration != 0 {
		m, err := hydration.NormalizeDuration(duration)
		if err != nil {
			return opts, fmt.Errorf("-duration: %w", err)
		}
		opts.DurationMinutes = m
	}

	if body == "" {
		body = cfg.BodyVariant
	}
	v, err := hydration.ParseBodyVariant(body)
	if err != nil {
		return opts, fmt.Errorf("-body: %w", err)
	}
	opts.Variant = v

	if mode == "" {
		mode = cfg.RenderMode
	}
	m, err := render.ParseMode(mode)
	if err != nil {
		return opts, fmt.Errorf("-mode: %w", err)
	}
	opts.Mode = m

	return opts, nil
}
