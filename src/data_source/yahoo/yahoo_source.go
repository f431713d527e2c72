package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stock-ticker/src/helpers"
	"stock-ticker/src/interfaces"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/utils"
)

type YahooFinanceSource struct {
	Config  models.MDataSourceConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg models.MDataSourceConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *YahooFinanceSource {
	return &YahooFinanceSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// FetchDailySeries fetches the whole daily history of symbol
func (s *YahooFinanceSource) FetchDailySeries(ctx context.Context, symbol string) (*models.MTimeSeries, error) {
	params := map[string]string{
		"interval":       "1d",
		"range":          "max",
		"includePrePost": "false",
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(s.Config.BaseURL, "/"), symbol)

	respBytes, err := s.Network.Get(ctx, url, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	return s.parseChartResponse(symbol, respBytes)
}

// -----------------------------------------------------------------------------

type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				Symbol               string `json:"symbol"`
				ExchangeName         string `json:"exchangeName"`
				RegularMarketTime    int64  `json:"regularMarketTime"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				DataGranularity      string `json:"dataGranularity"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					High  []*float64 `json:"high"`  // Use pointers to handle null
					Low   []*float64 `json:"low"`   // Use pointers to handle null
					Open  []*float64 `json:"open"`  // Use pointers to handle null
					Close []*float64 `json:"close"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) parseChartResponse(symbol string, data []byte) (*models.MTimeSeries, error) {
	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewDataSourceError("json unmarshal failed", err)
	}

	if resp.Chart.Error != nil {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description), nil)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("no result in response for %s", symbol), nil)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("no timestamps in response for %s", symbol), nil)
	}

	if len(result.Indicators.Quote) == 0 {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("no quote data in response for %s", symbol), nil)
	}
	quote := result.Indicators.Quote[0]

	// 1. Validation: Alignment check
	n := len(result.Timestamp)
	if n != len(quote.Open) || n != len(quote.High) || n != len(quote.Low) || n != len(quote.Close) {
		s.Logger.Info("Data alignment error for %s: Mismatched array lengths", symbol)
		return nil, helpers.NewDataSourceError(fmt.Sprintf("data alignment error for %s", symbol), nil)
	}

	loc := time.UTC
	if result.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(result.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	// 2. Build daily records keyed by exchange-local date
	byDate := make(map[time.Time]models.MDailyPrice, n)
	for i := 0; i < n; i++ {
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			s.Logger.Debug("Skipping null row for %s at index %d", symbol, i)
			continue
		}

		local := time.Unix(result.Timestamp[i], 0).In(loc)
		date := utils.TruncateToDate(local)

		// Later rows for the same date (intraday refresh of the last bar) win
		byDate[date] = models.MDailyPrice{
			Date:  date,
			Open:  toDecimal(*quote.Open[i]),
			High:  toDecimal(*quote.High[i]),
			Low:   toDecimal(*quote.Low[i]),
			Close: toDecimal(*quote.Close[i]),
		}
	}

	if len(byDate) == 0 {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("no valid data points for %s", symbol), nil)
	}

	prices := make([]models.MDailyPrice, 0, len(byDate))
	for _, p := range byDate {
		prices = append(prices, p)
	}
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})

	series := &models.MTimeSeries{
		Symbol:   symbol,
		TimeZone: loc.String(),
		Prices:   prices,
	}
	if result.Meta.Symbol != "" {
		series.Symbol = strings.ToUpper(result.Meta.Symbol)
	}
	if result.Meta.RegularMarketTime > 0 {
		series.LastRefreshed = time.Unix(result.Meta.RegularMarketTime, 0).In(loc).Format(utils.DateLayout)
	}

	s.Logger.Info("Fetched %s: %d daily points [%s -> %s]", series.Symbol, len(prices),
		prices[0].Date.Format(utils.DateLayout), prices[len(prices)-1].Date.Format(utils.DateLayout))

	return series, nil
}

// -----------------------------------------------------------------------------

func toDecimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(4)
}
