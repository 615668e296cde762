package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode/utf8"

	httpapi "github.com/i474232898/weather-report/internal/api/http"
	"github.com/i474232898/weather-report/internal/config"
	"github.com/i474232898/weather-report/internal/scheduler"
	"github.com/i474232898/weather-report/internal/source"
	"github.com/i474232898/weather-report/internal/store"
	"github.com/i474232898/weather-report/internal/weather"
)

const usage = `weather-report summarises daily low/high temperatures.

Usage:
  weather-report report [-daily] [-comma ,] [-out FILE] <path|url>
  weather-report serve

Serve reads WEATHER_* environment variables, .env and weather.yaml.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "report":
		err = runReport(context.Background(), os.Args[2:], os.Stdout)
	case "serve":
		err = runServe()
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

// runReport loads one source and writes the overview (and optionally the
// per-day report) to stdout or -out.
func runReport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	daily := fs.Bool("daily", false, "also print the per-day report")
	comma := fs.String("comma", ",", "field delimiter")
	outFile := fs.String("out", "", "write the report to this file instead of stdout")
	timeout := fs.Duration("timeout", 30*time.Second, "timeout for remote sources")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one path or URL is required")
	}
	if utf8.RuneCountInString(*comma) != 1 {
		return fmt.Errorf("invalid -comma %q: must be a single character", *comma)
	}
	delim, _ := utf8.DecodeRuneInString(*comma)

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	src := source.New("input", fs.Arg(0), source.Options{
		Client: &http.Client{Timeout: *timeout},
	})
	ds, err := weather.Load(ctx, src, weather.WithComma(delim))
	if err != nil {
		return err
	}

	text, err := weather.Summary(ds)
	if err != nil {
		return err
	}
	if *daily {
		days, err := weather.DailySummary(ds)
		if err != nil {
			return err
		}
		text += "\n" + days
	}

	if *outFile == "" {
		_, err = io.WriteString(stdout, text)
		return err
	}
	f, err := os.Create(*outFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	return writeAndClose(f, text)
}

// writeAndClose reports a Close failure when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, text string) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()
	_, err = io.WriteString(wc, text)
	return err
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Shared HTTP client for remote sources.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	sources := make([]weather.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		sources = append(sources, source.New(sc.Name, sc.Location, source.Options{
			Client: httpClient,
			RPS:    cfg.RemoteRPS,
			Burst:  cfg.RemoteBurst,
		}))
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	service := weather.NewService(memStore, sources, weather.WithComma(cfg.Delimiter()))

	sched := scheduler.New(service.Sources(), cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: serving %d sources on :%s", len(sources), cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	return nil
}
