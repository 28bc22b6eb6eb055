package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openacademic/cfp-watch/app/cfg"
	"github.com/openacademic/cfp-watch/app/config"
	"github.com/openacademic/cfp-watch/app/fetch"
	"github.com/openacademic/cfp-watch/app/pipeline"
	"github.com/openacademic/cfp-watch/app/store"
	"github.com/openacademic/cfp-watch/app/translate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Running without a .env file is normal outside local development.
		slog.Debug(".env file not loaded", "error", err)
	}

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)
	slog.Info("Starting CFP Watch pipeline", "version", appCfg.Version)

	journals, err := config.NewLoader(appCfg.JournalsFile).Load()
	if err != nil {
		slog.Error("Failed to load journal configuration", "file", appCfg.JournalsFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded journal configuration", "file", appCfg.JournalsFile, "journals", len(journals))

	prev, err := store.Load(appCfg.DataFile)
	if err != nil {
		slog.Error("Failed to load previous data file", "file", appCfg.DataFile, "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 5,
		},
	}

	fetcher := fetch.NewFetcher(httpClient, appCfg.UserAgent,
		time.Duration(appCfg.FetchTimeout)*time.Second, appCfg.FetchRetries)
	translator := translate.NewTranslator(httpClient, appCfg.TranslateURL, appCfg.TargetLang,
		appCfg.UserAgent, time.Duration(appCfg.TranslateInterval)*time.Millisecond)

	if !translator.Enabled() {
		slog.Info("Translation disabled")
	}

	// A termination signal cancels in-flight work; the previous data file
	// stays intact because the store is only replaced atomically at the end.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := pipeline.New(journals, fetcher, translator, appCfg.KeepExpired(),
		time.Duration(appCfg.JournalDelay)*time.Second)

	data, report := p.Run(ctx, prev)

	if err := store.Save(appCfg.DataFile, data); err != nil {
		slog.Error("Failed to persist data file", "file", appCfg.DataFile, "error", err)
		os.Exit(1)
	}

	failed := report.Failed()
	slog.Info("Pipeline run complete",
		"file", appCfg.DataFile,
		"journals", len(report.Results),
		"failed", len(failed),
		"dropped_fragments", report.DroppedFragments())
	for _, result := range failed {
		slog.Warn("Journal carried forward unchanged",
			"journal", result.Journal, "stage", string(result.Stage), "error", result.Err)
	}

	// Partial data beats no update: journal-level failures do not fail the run.
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
