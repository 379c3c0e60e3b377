package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/glisdarx/beee-media/internal/config"
	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/glisdarx/beee-media/internal/export"
	"github.com/glisdarx/beee-media/internal/service/creator"
	"github.com/glisdarx/beee-media/internal/tikhub"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type keywordOutcome struct {
	keyword string
	files   []string
	total   int
	err     error
}

func main() {
	keywordsFlag := flag.String("keywords", "", "comma separated search keywords")
	concurrency := flag.Int("concurrency", 2, "keywords searched in parallel")
	outDir := flag.String("out", "output", "output directory")
	format := flag.String("format", "both", "csv, report or both")
	followerRange := flag.String("follower-range", "", "optional follower bucket, e.g. 10000-100000")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	keywords := config.ParseCommaSeparated(*keywordsFlag)
	if len(keywords) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bulk_search -keywords \"beauty,makeup\" [-concurrency 2] [-out output]")
		os.Exit(2)
	}
	if *format != "csv" && *format != "report" && *format != "both" {
		logger.Fatal("invalid -format", zap.String("format", *format))
	}
	if *concurrency < 1 {
		*concurrency = 1
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("failed to create output directory", zap.Error(err))
	}
	firstNumber, err := export.NextFileNumber(*outDir)
	if err != nil {
		logger.Fatal("failed to scan output directory", zap.Error(err))
	}

	client := tikhub.NewClient(cfg.TikHub.BaseURL, cfg.TikHub.APIKey, logger)
	searcher := creator.NewService(client, logger)
	filters := domain.SearchFilters{FollowerRange: *followerRange}

	ctx := context.Background()
	p := pool.New().WithMaxGoroutines(*concurrency)

	// Each goroutine owns one index of outcomes.
	outcomes := make([]keywordOutcome, len(keywords))
	for idx, keyword := range keywords {
		p.Go(func() {
			outcomes[idx] = runKeyword(ctx, searcher, keyword, filters, *outDir, firstNumber+idx, *format)
		})
	}

	p.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			logger.Error("Keyword failed", zap.String("keyword", o.keyword), zap.Error(o.err))
			continue
		}
		logger.Info("Keyword exported",
			zap.String("keyword", o.keyword),
			zap.Int("creators", o.total),
			zap.Strings("files", o.files),
		)
	}

	logger.Info("Bulk search completed",
		zap.Int("keywords", len(keywords)),
		zap.Int("failed", failed),
		zap.String("output", *outDir),
	)
	if failed > 0 {
		os.Exit(1)
	}
}

func runKeyword(ctx context.Context, searcher *creator.Service, keyword string, filters domain.SearchFilters, outDir string, number int, format string) keywordOutcome {
	outcome := keywordOutcome{keyword: keyword}

	result, err := searcher.Search(ctx, keyword, filters)
	if err != nil {
		outcome.err = err
		return outcome
	}
	outcome.total = len(result.Creators)

	now := time.Now()
	prefix := export.FilePrefix(outDir, number, result.Keyword, now)

	if format == "csv" || format == "both" {
		path := prefix + ".csv"
		if err := export.WriteCSV(path, result.Creators); err != nil {
			outcome.err = fmt.Errorf("write csv: %w", err)
			return outcome
		}
		outcome.files = append(outcome.files, path)
	}

	if format == "report" || format == "both" {
		path := prefix + "_report.json"
		if err := export.WriteJSON(path, export.BuildReport(result.Keyword, result.Creators, now)); err != nil {
			outcome.err = fmt.Errorf("write report: %w", err)
			return outcome
		}
		outcome.files = append(outcome.files, path)
	}

	return outcome
}
