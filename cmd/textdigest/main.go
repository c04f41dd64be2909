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
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"textdigest/internal/api"
	"textdigest/internal/config"
	"textdigest/internal/domain"
	"textdigest/internal/errortypes"
	"textdigest/internal/humanizer"
	"textdigest/internal/logger"
	"textdigest/internal/processor"
	"textdigest/internal/report"
	"textdigest/internal/service"
	"textdigest/internal/stopwords"
	"textdigest/internal/summarizer"
	"textdigest/internal/tui"
	"textdigest/internal/watcher"
)

const usage = `Usage:
  textdigest [flags] file1.txt [file2.txt ...]   browse digests in the terminal
  textdigest -print [flags] files...             print reports to stdout
  textdigest -out DIR [flags] files...           write reports into DIR
  textdigest -serve [flags]                      serve the HTTP API
  textdigest -watch [flags]                      process transcripts dropped into the inbox
`

func main() {
	_ = godotenv.Load()

	var (
		cfgPath    string
		percentage int
		keywords   int
		serve      bool
		watch      bool
		printOnly  bool
		noSummary  bool
		outDir     string
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/textdigest/config.yaml if not provided)")
	flag.IntVar(&percentage, "percentage", 0, "Percentage of sentences kept in summaries (overrides config)")
	flag.IntVar(&keywords, "keywords", 0, "Number of keywords reported (overrides config)")
	flag.BoolVar(&serve, "serve", false, "Serve the HTTP API")
	flag.BoolVar(&watch, "watch", false, "Watch the inbox directory for new transcripts")
	flag.BoolVar(&noSummary, "no-summary", false, "Leave the summary out of reports (keywords and outline are kept)")
	flag.BoolVar(&printOnly, "print", false, "Print reports to stdout instead of opening the TUI")
	flag.StringVar(&outDir, "out", "", "Write reports into this directory instead of opening the TUI")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if percentage != 0 {
		cfg.Summarizer.Percentage = percentage
	}
	if keywords != 0 {
		cfg.Summarizer.Keywords = keywords
	}
	if noSummary {
		cfg.Summarizer.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging, os.Stderr)
	slog.SetDefault(log)

	svc := newService(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case serve:
		err = runServer(ctx, cfg, svc, log)
	case watch:
		err = runWatcher(ctx, cfg, svc, log)
	case outDir != "":
		err = runBatch(ctx, cfg, svc, log, outDir, flag.Args())
	case printOnly:
		err = runPrint(ctx, cfg, svc, flag.Args())
	default:
		err = runTUI(ctx, cfg, svc, flag.Args())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		errortypes.LogError(log, err)
		if errortypes.IsInvalidArgument(err) {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newService(cfg *config.AppConfig, log *slog.Logger) *service.DigestServiceImpl {
	var improver domain.ReadabilityImprover
	if cfg.Humanizer.Readability {
		improver = humanizer.NewReadabilityImprover(nil)
	}
	return service.NewDigestService(
		summarizer.NewFrequencySummarizer(stopwords.Spanish()),
		summarizer.NewKeywordExtractor(stopwords.SpanishKeywords()),
		humanizer.New(humanizer.WithSentencesPerParagraph(cfg.Humanizer.ParagraphSentences)),
		improver,
		cfg.Summarizer.Keywords,
		log,
		service.WithSummary(cfg.Summarizer.Enabled),
	)
}

func runTUI(ctx context.Context, cfg *config.AppConfig, svc *service.DigestServiceImpl, inputs []string) error {
	docs, err := service.LoadDocuments(inputs)
	if err != nil {
		return err
	}
	m := tui.New(ctx, svc, docs, cfg.Summarizer.Percentage, cfg.Summarizer.Keywords)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func runPrint(ctx context.Context, cfg *config.AppConfig, svc *service.DigestServiceImpl, inputs []string) error {
	docs, err := service.LoadDocuments(inputs)
	if err != nil {
		return err
	}
	for i, doc := range docs {
		d, err := svc.Digest(ctx, doc, cfg.Summarizer.Percentage)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(report.Render(d, time.Now()))
	}
	return nil
}

func runBatch(ctx context.Context, cfg *config.AppConfig, svc *service.DigestServiceImpl, log *slog.Logger, outDir string, inputs []string) error {
	docs, err := service.LoadDocuments(inputs)
	if err != nil {
		return err
	}
	paths := make([]string, len(docs))
	for i, d := range docs {
		paths[i] = d.Path
	}
	proc := processor.New(svc, outDir, cfg.Summarizer.Percentage, log)
	return processor.ProcessAll(ctx, proc, paths, cfg.Watcher.MaxConcurrent)
}

func runWatcher(ctx context.Context, cfg *config.AppConfig, svc *service.DigestServiceImpl, log *slog.Logger) error {
	for _, dir := range []string{cfg.Watcher.Input, cfg.Watcher.Output} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errortypes.IOError(err, "create directory").WithField("dir", dir)
		}
	}
	proc := processor.New(svc, cfg.Watcher.Output, cfg.Summarizer.Percentage, log)
	w, err := watcher.New(cfg.Watcher.Input, proc.Process, log, cfg.Watcher.MaxConcurrent)
	if err != nil {
		return errortypes.IOError(err, "start watcher")
	}
	defer w.Stop()

	log.InfoContext(ctx, "textdigest watcher ready", "input", cfg.Watcher.Input, "output", cfg.Watcher.Output)
	return w.Start(ctx)
}

func runServer(ctx context.Context, cfg *config.AppConfig, svc *service.DigestServiceImpl, log *slog.Logger) error {
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(svc, cfg.Summarizer.Percentage, log))

	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     api.LogRequests(log, mux),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting server", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errortypes.IOError(err, "http server")
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
