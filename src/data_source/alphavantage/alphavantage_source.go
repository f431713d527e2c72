package alphavantage

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

const timeSeriesKey = "Time Series (Daily)"

type AlphaVantageSource struct {
	Config  models.MDataSourceConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAlphaVantageSource(cfg models.MDataSourceConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *AlphaVantageSource {
	return &AlphaVantageSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *AlphaVantageSource) Name() string {
	return "alphavantage"
}

// -----------------------------------------------------------------------------

// FetchDailySeries requests the full daily history for symbol
func (s *AlphaVantageSource) FetchDailySeries(ctx context.Context, symbol string) (*models.MTimeSeries, error) {
	params := map[string]string{
		"function":   s.Config.Function,
		"symbol":     symbol,
		"outputsize": s.Config.OutputSize,
		"apikey":     s.Config.APIKey,
	}

	respBytes, err := s.Network.Get(ctx, s.Config.BaseURL, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	return s.parseDailyResponse(symbol, respBytes)
}

// -----------------------------------------------------------------------------

type DailyResponse struct {
	MetaData struct {
		Information   string `json:"1. Information"`
		Symbol        string `json:"2. Symbol"`
		LastRefreshed string `json:"3. Last Refreshed"`
		OutputSize    string `json:"4. Output Size"`
		TimeZone      string `json:"5. Time Zone"`
	} `json:"Meta Data"`
	TimeSeries map[string]map[string]string `json:"Time Series (Daily)"`

	// The API answers 200 with one of these instead of a series on failure
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// -----------------------------------------------------------------------------

func (s *AlphaVantageSource) parseDailyResponse(symbol string, data []byte) (*models.MTimeSeries, error) {
	var resp DailyResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, helpers.NewDataSourceError("json unmarshal failed", err)
	}

	if resp.TimeSeries == nil {
		switch {
		case resp.ErrorMessage != "":
			return nil, helpers.NewDataSourceError(fmt.Sprintf("alphavantage error for %s: %s", symbol, resp.ErrorMessage), nil)
		case resp.Note != "":
			return nil, helpers.NewDataSourceError(fmt.Sprintf("alphavantage note for %s: %s", symbol, resp.Note), nil)
		case resp.Information != "":
			return nil, helpers.NewDataSourceError(fmt.Sprintf("alphavantage information for %s: %s", symbol, resp.Information), nil)
		default:
			return nil, helpers.NewDataSourceError(fmt.Sprintf("no %q in response for %s", timeSeriesKey, symbol), nil)
		}
	}

	prices := make([]models.MDailyPrice, 0, len(resp.TimeSeries))
	for dateStr, fields := range resp.TimeSeries {
		price, err := parseDailyRecord(dateStr, fields)
		if err != nil {
			s.Logger.Info("Invalid daily record for %s on %s: %v", symbol, dateStr, err)
			return nil, helpers.NewDataSourceError(fmt.Sprintf("invalid record for %s on %s", symbol, dateStr), err)
		}
		prices = append(prices, price)
	}

	// Map iteration order is random; the series must be sorted by date
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})

	series := &models.MTimeSeries{
		Symbol:        symbol,
		LastRefreshed: resp.MetaData.LastRefreshed,
		TimeZone:      resp.MetaData.TimeZone,
		Prices:        prices,
	}
	if resp.MetaData.Symbol != "" {
		series.Symbol = strings.ToUpper(resp.MetaData.Symbol)
	}

	if len(prices) > 0 {
		s.Logger.Info("Fetched %s: %d daily points [%s -> %s]", series.Symbol, len(prices),
			prices[0].Date.Format(utils.DateLayout), prices[len(prices)-1].Date.Format(utils.DateLayout))
	}

	return series, nil
}

// -----------------------------------------------------------------------------

func parseDailyRecord(dateStr string, fields map[string]string) (models.MDailyPrice, error) {
	date, err := time.Parse(utils.DateLayout, dateStr)
	if err != nil {
		return models.MDailyPrice{}, err
	}

	values := make(map[models.MPriceField]decimal.Decimal, len(models.AllPriceFields))
	for _, f := range models.AllPriceFields {
		raw, ok := fields[f.APIKey()]
		if !ok {
			return models.MDailyPrice{}, fmt.Errorf("missing field %q", f.APIKey())
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return models.MDailyPrice{}, fmt.Errorf("field %q: %w", f.APIKey(), err)
		}
		values[f] = d
	}

	return models.MDailyPrice{
		Date:  date,
		Open:  values[models.FieldOpen],
		High:  values[models.FieldHigh],
		Low:   values[models.FieldLow],
		Close: values[models.FieldClose],
	}, nil
}
