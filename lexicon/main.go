package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"yadro.com/lexicon/lexicon/adapters/aaa"
	"yadro.com/lexicon/lexicon/adapters/events"
	"yadro.com/lexicon/lexicon/adapters/loader"
	"yadro.com/lexicon/lexicon/adapters/metrics"
	"yadro.com/lexicon/lexicon/adapters/morph"
	"yadro.com/lexicon/lexicon/adapters/rest"
	"yadro.com/lexicon/lexicon/adapters/rest/middleware"
	"yadro.com/lexicon/lexicon/adapters/segmenter"
	"yadro.com/lexicon/lexicon/adapters/stopwords"
	"yadro.com/lexicon/lexicon/config"
	"yadro.com/lexicon/lexicon/core"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	log.Info("starting lexicon server")
	log.Debug("debug messages are enabled")

	// ресурсы загружаются один раз и дальше только читаются
	stop, err := stopwords.Load(cfg.StopwordsFile)
	if err != nil {
		return fmt.Errorf("failed to load stopwords: %v", err)
	}
	dict, err := morph.Load(cfg.MorphDict)
	if err != nil {
		return fmt.Errorf("failed to load morphology dictionary: %v", err)
	}
	seg, err := segmenter.New(cfg.Segmenter)
	if err != nil {
		return fmt.Errorf("failed to create segmenter: %v", err)
	}
	res, err := core.NewResources(stop, dict, seg)
	if err != nil {
		return fmt.Errorf("failed to init resources: %v", err)
	}
	log.Info("resources loaded", "stopwords", stop.Len(), "dictionary", dict.Len(), "segmenter", cfg.Segmenter)

	// уведомления об изменениях словаря
	var notifiers core.Notifiers
	var metricsAdapter *metrics.Metrics
	if cfg.MetricsEnabled {
		metricsAdapter = metrics.New()
		notifiers = append(notifiers, metricsAdapter)
	}
	if cfg.BrokerAddress != "" {
		publisher, err := events.NewNatsPublisher(cfg.BrokerAddress, log)
		if err != nil {
			return fmt.Errorf("failed to connect to broker: %v", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("failed to close broker connection", "error", err)
			}
		}()
		notifiers = append(notifiers, publisher)
	}

	service, err := core.NewService(log, res, loader.New(), notifiers)
	if err != nil {
		return fmt.Errorf("failed to create service: %v", err)
	}

	auth, err := aaa.New(cfg.TokenTTL, log)
	if err != nil {
		return fmt.Errorf("failed to init auth: %v", err)
	}

	limitRate := middleware.Rate(cfg.RateLimit)
	limitConcurrency := middleware.Concurrency(cfg.ConcurrencyLimit)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		if strings.Contains(pattern, "/api/") {
			h = limitRate(limitConcurrency(h))
		}
		if metricsAdapter != nil {
			h = metricsAdapter.Instrument(pattern, h)
		}
		mux.Handle(pattern, h)
	}
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Auth(h, auth, log)
	}

	handle("GET /ping", rest.NewPingHandler(log))
	handle("POST /api/login", rest.NewLoginHandler(log, auth))
	handle("POST /api/documents", protected(rest.NewDocumentHandler(log, service, cfg.MaxDocumentSize)))
	handle("GET /api/lemmas", rest.NewLemmasHandler(log, service))
	handle("GET /api/lemmas/{lemma}", rest.NewPartnersHandler(log, service))
	handle("POST /api/lemmas/{lemma}/partners", protected(rest.NewAddLinkHandler(log, service)))
	handle("DELETE /api/lemmas/{lemma}/partners/{partner}", protected(rest.NewRemoveLinkHandler(log, service)))
	handle("DELETE /api/lexicon", protected(rest.NewClearHandler(log, service)))
	handle("GET /api/lexicon/stats", rest.NewStatsHandler(log, service))
	handle("GET /api/export/dictionary", rest.NewDictionaryHandler(log, service))
	handle("GET /api/export/report", rest.NewReportHandler(log, service))
	if metricsAdapter != nil {
		mux.Handle("GET /metrics", metricsAdapter.Handler())
	}

	server := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		Handler:           mux,
		ReadTimeout:       cfg.HTTPServer.Timeout,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		WriteTimeout:      cfg.HTTPServer.Timeout,
		IdleTimeout:       2 * cfg.HTTPServer.Timeout,
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-ctx.Done()
		log.Debug("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.Timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("erroneous shutdown", "error", err)
		}
	}()

	log.Info("listening", "address", cfg.HTTPServer.Address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server closed unexpectedly: %v", err)
	}
	return nil
}

func mustMakeLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		slogLevel = slog.LevelDebug
	case "INFO":
		slogLevel = slog.LevelInfo
	case "WARN", "WARNING":
		slogLevel = slog.LevelWarn
	case "ERROR":
		slogLevel = slog.LevelError
	default:
		panic("unknown log level: " + level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	}))
}
