package chart

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"stock-ticker/src/logger"
	"stock-ticker/src/models"
)

func newBuilder() *LineChartBuilder {
	return NewLineChartBuilder(models.MChartConfig{
		ProviderLabel: "AlphaVantage",
		Width:         "900px",
		Height:        "500px",
		AssetsHost:    "https://assets.example.com/",
	}, logger.NewLoggerTo(io.Discard, "ERROR", "chart"))
}

func sampleTable() *models.MPriceTable {
	return &models.MPriceTable{
		Symbol:  "AAPL",
		Columns: []string{"Date", "Open", "Close"},
		Dates: []time.Time{
			time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		Values: [][]float64{{111.39, 108.29}, {109.33, 106.25}},
	}
}

func TestRenderSnippet(t *testing.T) {
	snippet, err := newBuilder().RenderSnippet(sampleTable())
	if err != nil {
		t.Fatalf("RenderSnippet: %v", err)
	}
	if snippet.Element == "" || snippet.Script == "" {
		t.Fatalf("empty snippet: %+v", snippet)
	}

	for _, want := range []string{
		"AlphaVantage Stock Prices - AAPL",
		"AAPL-Open",
		"AAPL-Close",
		"2015-01-05",
		Set1[0],
		Set1[1],
	} {
		if !strings.Contains(snippet.Script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := newBuilder().RenderPage(sampleTable(), &buf); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	page := buf.String()
	if !strings.Contains(page, "https://assets.example.com/echarts.min.js") {
		t.Error("page does not load echarts from the assets host")
	}
	if !strings.Contains(page, "AAPL-Close") {
		t.Error("page missing series")
	}
}

func TestRenderRejectsEmptyTable(t *testing.T) {
	empty := &models.MPriceTable{Symbol: "AAPL", Columns: []string{"Date", "Open"}, Values: [][]float64{{}}}
	if _, err := newBuilder().RenderSnippet(empty); err == nil {
		t.Error("expected error for empty table")
	}
}

func TestTitleUsesProviderLabel(t *testing.T) {
	b := newBuilder()
	b.Config.ProviderLabel = "Yahoo Finance"
	if got := b.Title("MSFT"); got != "Yahoo Finance Stock Prices - MSFT" {
		t.Errorf("Title = %q", got)
	}
}
