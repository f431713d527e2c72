package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stock-ticker/src/analysis"
	"stock-ticker/src/chart"
	"stock-ticker/src/helpers"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/pipeline"
)

type fakeSource struct {
	series *models.MTimeSeries
	err    error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchDailySeries(ctx context.Context, symbol string) (*models.MTimeSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

func testSeries() *models.MTimeSeries {
	p := func(d string, v string) models.MDailyPrice {
		date, _ := time.Parse("2006-01-02", d)
		x := decimal.RequireFromString(v)
		return models.MDailyPrice{Date: date, Open: x, High: x, Low: x, Close: x}
	}
	return &models.MTimeSeries{
		Symbol: "AAPL",
		Prices: []models.MDailyPrice{
			p("2015-01-02", "109.33"),
			p("2015-01-05", "106.25"),
			p("2015-01-06", "106.26"),
		},
	}
}

func testConfig() *models.MConfig {
	return &models.MConfig{
		Host:     "127.0.0.1",
		Port:     33507,
		LogLevel: "ERROR",
		Chart: models.MChartConfig{
			ProviderLabel: "AlphaVantage",
			Width:         "900px",
			Height:        "500px",
			AssetsHost:    "https://assets.example.com/",
		},
	}
}

func newTestServer(t *testing.T, cfg *models.MConfig, src *fakeSource) *WebServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewLoggerTo(io.Discard, "ERROR", "server")
	p := pipeline.NewPipeline(src, analysis.NewAnalysisFacade(log), chart.NewLineChartBuilder(cfg.Chart, log), log)

	s, err := NewWebServer(cfg, p, log)
	if err != nil {
		t.Fatalf("NewWebServer: %v", err)
	}
	return s
}

func postForm(s *WebServer, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func get(s *WebServer, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

const validQuery = "/plot?ticker=AAPL&start_date=2015-01-01&end_date=2015-12-31&prices=close"

// -----------------------------------------------------------------------------

func TestIndexRendersForm(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})
	w := get(s, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`name="ticker"`, `value="open"`, `value="close"`, "High"} {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %q", want)
		}
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestPostRedirects(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})

	tests := []struct {
		name     string
		values   url.Values
		location string
	}{
		{
			"no prices",
			url.Values{"ticker": {"AAPL"}, "start_date": {"2015-01-01"}, "end_date": {"2015-12-31"}},
			"/error?reason=no_prices",
		},
		{
			"end before start",
			url.Values{"ticker": {"AAPL"}, "start_date": {"2016-01-01"}, "end_date": {"2015-01-01"}, "prices": {"open"}},
			"/error?reason=invalid_dates",
		},
		{
			"valid",
			url.Values{"ticker": {"aapl"}, "start_date": {"2015-01-01"}, "end_date": {"2015-12-31"}, "prices": {"close"}},
			"/plot?end_date=2015-12-31&prices=close&start_date=2015-01-01&ticker=AAPL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(s, tt.values)
			if w.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", w.Code)
			}
			if got := w.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestPlotRendersDashboard(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})
	w := get(s, validQuery)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{
		"https://assets.example.com/echarts.min.js",
		"AlphaVantage Stock Prices - AAPL",
		"AAPL-Close",
		"$109.33",
		"3 trading sessions",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestPlotValidatesItsOwnQuery(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})
	w := get(s, "/plot?ticker=AAPL&start_date=2015-12-31&end_date=2015-01-01&prices=close")

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/error?reason=invalid_dates" {
		t.Errorf("Location = %q", got)
	}
}

func TestPlotEmptyRangeRedirects(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})
	w := get(s, "/plot?ticker=AAPL&start_date=2020-01-01&end_date=2020-12-31&prices=close")

	if got := w.Header().Get("Location"); got != "/error?reason=no_data" {
		t.Errorf("Location = %q, want no_data redirect", got)
	}
}

func TestPlotUpstreamErrorShowsStatusCode(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{err: helpers.NewAPIStatusError(503, "maintenance")})
	w := get(s, validQuery)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error code: 503") {
		t.Errorf("error page does not show upstream code: %s", w.Body.String())
	}
}

func TestErrorPageMessages(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})

	tests := map[string]string{
		"no_prices":     "Please select at least one price type",
		"invalid_dates": "The end date must not be before the start date",
		"bogus":         "Something went wrong",
	}
	for reason, want := range tests {
		w := get(s, "/error?reason="+reason)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", reason, w.Code)
		}
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("%s: page missing %q", reason, want)
		}
	}
}

// -----------------------------------------------------------------------------

func TestAPISeries(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})
	w := get(s, "/api/series?ticker=AAPL&start_date=2015-01-01&end_date=2015-12-31&prices=open&prices=close")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var result models.MChartResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Table.Columns) != 3 || result.Table.Columns[2] != "Close" {
		t.Errorf("Columns = %v", result.Table.Columns)
	}
	if len(result.Summaries) != 2 || result.Summaries[1].Last != 106.26 {
		t.Errorf("Summaries = %+v", result.Summaries)
	}
	if result.TradingDays != 3 {
		t.Errorf("TradingDays = %d, want 3", result.TradingDays)
	}
}

func TestAPISeriesRejectsBadInput(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})
	w := get(s, "/api/series?ticker=AAPL&start_date=2015-01-01&end_date=2015-12-31")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"reason":"no_prices"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAPIHealth(t *testing.T) {
	s := newTestServer(t, testConfig(), &fakeSource{series: testSeries()})
	w := get(s, "/api/health")

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"data_source":"fake"`) {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = models.MRateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	s := newTestServer(t, cfg, &fakeSource{series: testSeries()})

	if w := get(s, validQuery); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	w := get(s, validQuery)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q, want an HTML page", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "Too many charts requested") {
		t.Errorf("page missing rate limit message: %s", w.Body.String())
	}
	if w := get(s, "/api/health"); w.Code != http.StatusOK {
		t.Errorf("health should not be rate limited, got %d", w.Code)
	}
}

func TestRateLimitOnAPIAnswersJSON(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = models.MRateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	s := newTestServer(t, cfg, &fakeSource{series: testSeries()})

	const target = "/api/series?ticker=AAPL&start_date=2015-01-01&end_date=2015-12-31&prices=open"
	if w := get(s, target); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}

	w := get(s, target)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"reason":"rate_limited"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRateLimiterIsPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.2") {
		t.Fatal("first request of each client should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request of the same client should be limited")
	}
}
