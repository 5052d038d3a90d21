// SPDX-License-Identifier: EPL-2.0

// Command blockrender bounces every track of a session file to a WAV file and
// a MIDI file.
//
//	blockrender -session song.hcl -out renders
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ik5/blockrender"
	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/internal/config"
	"github.com/ik5/blockrender/internal/logger"
	"github.com/ik5/blockrender/internal/project"
	"github.com/ik5/blockrender/media"
)

const sentryFlushTimeout = 2 * time.Second

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitFault = 2
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	envLoaded := config.LoadEnv()
	cfg := config.Load()

	var (
		sessionPath string
		samplesDir  string
		only        string
		tail        float64
		verbose     bool
	)

	flag.StringVar(&sessionPath, "session", "", "Path to the HCL session file (required)")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory for rendered files")
	flag.StringVar(&samplesDir, "samples", "", "Directory region sources are relative to (default: the session's directory)")
	flag.StringVar(&only, "track", "", "Only bounce the track with this name")
	flag.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "Sample rate in Hz")
	flag.IntVar(&cfg.BlockSize, "block", cfg.BlockSize, "Block size in samples")
	flag.IntVar(&cfg.Channels, "channels", cfg.Channels, "Output channels")
	flag.IntVar(&cfg.BitDepth, "bits", cfg.BitDepth, "WAV bit depth: 16, 24 or 32")
	flag.Float64Var(&cfg.Tempo, "tempo", cfg.Tempo, "Tempo in bpm for beat/bar and MIDI timing")
	flag.Float64Var(&tail, "tail", 0, "Seconds rendered past the end of each track")
	flag.BoolVar(&verbose, "v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger.Init(os.Stderr, level)

	if !envLoaded {
		logger.Debug("No .env file found, using environment variables", nil)
	}
	for _, w := range cfg.Warnings {
		logger.Warn(w, nil)
	}

	if sessionPath == "" {
		logger.Warn("Session parameter is required", nil)
		flag.Usage()
		return exitError
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", err, nil)
		return exitError
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     "blockrender@" + releaseVersion,
			Debug:       !cfg.IsProduction(),
		}); err != nil {
			logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	session, err := project.LoadFile(sessionPath, cfg.Tempo)
	if err != nil {
		logger.Error("Failed to load session", err, logger.Fields{"session": sessionPath})
		return exitError
	}

	if samplesDir == "" {
		samplesDir = filepath.Dir(sessionPath)
	}
	lib := media.NewLibrary(samplesDir, media.NewDefaultRegistry(), cfg.Channels)
	lib.SetSampleRate(cfg.SampleRate)
	if err := lib.Preload(session.Sources()...); err != nil {
		logger.Error("Failed to load region sources", err, logger.Fields{"samples": samplesDir})
		return exitError
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("Failed to create output directory", err, logger.Fields{"out": cfg.OutputDir})
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := exitOK
	bounced := 0
	for _, t := range session.Tracks {
		if only != "" && t.Name != only {
			continue
		}

		opts := blockrender.Options{
			SampleRate:  cfg.SampleRate,
			BlockSize:   cfg.BlockSize,
			Channels:    cfg.Channels,
			BitDepth:    cfg.BitDepth,
			Tempo:       cfg.Tempo,
			MIDIChannel: t.Channel,
			Gain:        t.Gain,
			Tail:        tail,
			Store:       lib,
			Logger:      logger.Slog(),
		}

		res, err := blockrender.BounceFiles(ctx, t.Track, cfg.OutputDir, opts)
		fields := logger.Fields{"track": t.Name, "run_id": res.ID.String()}
		if err != nil {
			fields["fault"] = block.IsFault(err)
			logger.Error("Bounce failed", err, fields)
			if block.IsFault(err) {
				code = exitFault
			} else if code == exitOK {
				code = exitError
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}

		fields["blocks"] = res.Blocks
		fields["frames"] = res.Frames
		fields["notes"] = res.Notes
		fields["elapsed_ms"] = res.Elapsed.Milliseconds()
		logger.Info("Track bounced", fields)
		bounced++
	}

	if only != "" && bounced == 0 && code == exitOK {
		logger.Warn(fmt.Sprintf("No track named %q", only), nil)
		return exitError
	}

	return code
}
