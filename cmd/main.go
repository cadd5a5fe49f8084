package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	analysis "github.com/okian/swingmatch/internal/adapters/analysis"
	app "github.com/okian/swingmatch/internal/app"
	"github.com/okian/swingmatch/internal/config"
	"github.com/okian/swingmatch/internal/domain/model"
	"github.com/okian/swingmatch/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env for local development; real env always wins.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	var (
		videoPath = flag.String("video", "", "path to the forehand video to analyze")
		hand      = flag.String("hand", cfg.DefaultHand, "dominant hand: right or left")
		baseURL   = flag.String("url", cfg.BaseURL, "base URL of the analysis service")
		health    = flag.Bool("health", false, "probe the service health endpoint and exit")
	)
	flag.Parse()

	client := analysis.New(*baseURL,
		analysis.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		analysis.WithLogger(log.Named("analysis")),
	)

	svc, err := app.New(
		app.WithClient(client),
		app.WithDefaultHand(model.Hand(cfg.DefaultHand)),
		app.WithLogger(log.Named("app")),
	)
	if err != nil {
		log.Error(ctx, "failed to build service", logger.Error(err))
		return 1
	}

	if *health {
		status, err := svc.HealthCheck(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "service unhealthy: %s\n", err)
			return 1
		}
		fmt.Printf("status: %s\nversion: %s\n", status.Status, status.Version)
		return 0
	}

	if *videoPath == "" {
		fmt.Fprintln(os.Stderr, "usage: swingmatch --video path/to/forehand.mp4 [--hand right|left] [--url http://...]")
		return 2
	}

	if !model.Hand(*hand).Valid() {
		fmt.Fprintf(os.Stderr, "unknown hand %q: use %q or %q\n", *hand, model.RightHand, model.LeftHand)
		return 2
	}

	log.Info(ctx, "analyzing swing",
		logger.String("video", *videoPath),
		logger.String("hand", *hand),
		logger.String("url", *baseURL),
	)

	res, err := svc.AnalyzeFile(ctx, *videoPath, model.Hand(*hand))
	if err != nil {
		// The message is already user-facing; print it and leave the
		// caller free to retry.
		fmt.Fprintf(os.Stderr, "analysis failed: %s\n", err)
		return 1
	}
	defer func() {
		if res.Preview != nil {
			_ = res.Preview.Release()
		}
	}()

	svc.RenderSummary(os.Stdout, res)
	return 0
}
