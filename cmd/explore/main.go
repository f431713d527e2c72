package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"stock-ticker/src/config"
	"stock-ticker/src/logger"
	"stock-ticker/src/pipeline"
	"stock-ticker/src/validation"
)

// -----------------------------------------------------------------------------

func main() {
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	ticker := flag.String("ticker", "AAPL", "ticker symbol")
	start := flag.String("start", "2015-01-01", "first date (YYYY-MM-DD)")
	end := flag.String("end", "2016-01-01", "last date (YYYY-MM-DD)")
	prices := flag.String("prices", "open", "comma separated price fields (open,high,low,close)")
	out := flag.String("out", "", "output HTML file (default <TICKER>.html)")
	flag.Parse()

	if err := run(*configPath, *ticker, *start, *end, *prices, *out); err != nil {
		fmt.Fprintf(os.Stderr, "explore: %v\n", err)
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

func run(configPath, ticker, start, end, prices, out string) error {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return err
	}
	appLogger := logger.NewLogger(cfg.MConfig, "explore")

	values := url.Values{}
	values.Set(validation.KeyTicker, ticker)
	values.Set(validation.KeyStartDate, start)
	values.Set(validation.KeyEndDate, end)
	for _, f := range strings.Split(prices, ",") {
		values.Add(validation.KeyPrices, f)
	}

	req, err := validation.ParseChartRequest(values)
	if err != nil {
		return err
	}

	p, err := pipeline.Build(cfg.MConfig, appLogger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Network.RequestTimeout+5)*time.Second)
	defer cancel()

	result, err := p.Prepare(ctx, req)
	if err != nil {
		return err
	}

	if out == "" {
		out = req.Ticker + ".html"
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := p.Renderer.RenderPage(result.Table, f); err != nil {
		return err
	}

	for _, s := range result.Summaries {
		appLogger.Info("%s %s: first %.2f last %.2f min %.2f max %.2f (%+.2f%%)",
			req.Ticker, s.Column, s.First, s.Last, s.Min, s.Max, s.PercentChange)
	}
	appLogger.Info("Wrote %d rows (%d trading sessions) to %s", result.Table.Len(), result.TradingDays, out)
	return f.Close()
}
