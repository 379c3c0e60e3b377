package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glisdarx/beee-media/internal/config"
	"github.com/glisdarx/beee-media/internal/export"
	"github.com/glisdarx/beee-media/internal/service/trends"
	"github.com/glisdarx/beee-media/internal/tikhub"
	"github.com/glisdarx/beee-media/internal/util"
	"go.uber.org/zap"
)

type sweepReport struct {
	Timestamp string                 `json:"timestamp"`
	Fallback  trends.Fallback        `json:"fallback"`
	Total     int                    `json:"total"`
	Failed    int                    `json:"failed"`
	Countries []trends.CountryTrends `json:"countries"`
}

func main() {
	countriesFlag := flag.String("countries", "UnitedStates", "comma separated country names")
	delay := flag.Duration("delay", time.Second, "pause between country requests")
	fallbackFlag := flag.String("fallback", "skip", "what to emit for a failed country: skip, empty or placeholder")
	out := flag.String("out", "", "output file (stdout when empty)")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	fallback, err := trends.ParseFallback(*fallbackFlag)
	if err != nil {
		logger.Fatal("invalid -fallback", zap.Error(err))
	}

	countries := config.ParseCommaSeparated(*countriesFlag)
	if len(countries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: trends_sweep -countries \"UnitedStates,Japan\" [-delay 1s] [-fallback skip]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := tikhub.NewClient(cfg.TikHub.BaseURL, cfg.TikHub.APIKey, logger)
	svc := trends.NewService(client, logger)

	results := svc.Sweep(ctx, countries, *delay)

	report := sweepReport{
		Timestamp: util.NowISO(),
		Fallback:  fallback,
		Countries: trends.Resolve(results, fallback),
	}
	for _, r := range results {
		if r.Err != nil {
			report.Failed++
		}
	}
	for _, c := range report.Countries {
		report.Total += len(c.Trends)
	}

	if *out == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logger.Fatal("failed to write report", zap.Error(err))
		}
	} else if err := export.WriteJSON(*out, report); err != nil {
		logger.Fatal("failed to write report", zap.Error(err))
	}

	logger.Info("Trends sweep completed",
		zap.Int("countries", len(countries)),
		zap.Int("fetched", len(results)),
		zap.Int("failed", report.Failed),
		zap.Int("trends", report.Total),
	)
}
