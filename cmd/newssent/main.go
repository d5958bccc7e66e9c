package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"news-sentiment-go/internal/aggregate"
	"news-sentiment-go/internal/config"
	"news-sentiment-go/internal/cost"
	"news-sentiment-go/internal/ledger"
	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/pipeline"
	"news-sentiment-go/internal/report"
	"news-sentiment-go/internal/scrape"
	"news-sentiment-go/internal/sentiment"
	"news-sentiment-go/internal/store"
	"news-sentiment-go/internal/transcribe"
	"news-sentiment-go/internal/translate"
	"news-sentiment-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	runLog := log.WithRun().WithField("service", "news-sentiment-go")
	runLog.Info("starting batch run")

	cfgPath := envOr("NEWSSENT_CONFIG", "newssent.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		runLog.WithError(err).Fatal("failed to load run manifest")
	}
	runLog.WithField("manifest", cfgPath).WithField("sources", len(cfg.Items())).Info("manifest loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var remote store.Remote
	mediaBase := ""
	if cfg.BucketURL != "" {
		objStore := store.NewHTTPObjectStore(cfg.BucketURL)
		remote = objStore
		mediaBase = cfg.BucketURL
	} else {
		runLog.Warn("no bucket configured, durable storage leg disabled")
	}
	st, err := store.New(cfg.WorkDir, remote, log)
	if err != nil {
		runLog.WithError(err).Fatal("failed to open artifact store")
	}

	led := ledger.New()
	pipe := pipeline.New(pipeline.Deps{
		Scraper:   scrape.New(nil),
		Translate: translate.NewStage(translate.NewHTTPClient(cfg.Endpoints.Translate), st, led, cfg.CharLimit, log),
		Transcribe: transcribe.NewStage(transcribe.NewHTTPClient(cfg.Endpoints.Transcribe), st, led, transcribe.Options{
			PollInterval: cfg.PollInterval.Std(),
			MaxWait:      cfg.PollMaxWait.Std(),
			MediaBaseURI: mediaBase,
		}, log),
		Sentiment: sentiment.NewStage(sentiment.NewHTTPClient(cfg.Endpoints.Sentiment), st, led, cfg.CharLimit, log),
		Log:       log,
	})

	res, err := pipe.Run(ctx, cfg.Items())
	if err != nil {
		runLog.WithError(err).Fatal("run interrupted")
	}

	summary := aggregate.Summarize(res.Records)
	lines := cost.Estimate(led.Snapshot(), cfg.Prices)
	if err := report.NewWriter(st, log).WriteAll(ctx, res.Records, lines, summary); err != nil {
		runLog.WithError(err).Fatal("failed to write reports")
	}

	for _, f := range res.Failures {
		runLog.WithField("source", f.Source).WithField("error", f.Err.Error()).Warn("item skipped")
	}
	if fails := st.RemoteFailures(); len(fails) > 0 {
		runLog.WithField("keys", fails).Warn("durable uploads failed, rerun to restore reproducibility")
	}

	total := lines[len(lines)-1]
	runLog.WithField("processed", res.Processed()).
		WithField("failed", len(res.Failures)).
		WithField("total_cost_usd", fmt.Sprintf("%.4f", total.CostUSD)).
		Info("batch run complete")
	printCostTable(lines)
}

func printCostTable(lines []types.CostLine) {
	for _, l := range lines {
		if l.Service == types.TotalService {
			fmt.Printf("%-12s %12s %10.4f\n", l.Service, "", l.CostUSD)
			continue
		}
		fmt.Printf("%-12s %12.0f %10.4f\n", l.Service, l.Usage, l.CostUSD)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
