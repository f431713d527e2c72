package analysis

import (
	"fmt"

	"stock-ticker/src/analysis/core"
	"stock-ticker/src/helpers"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/utils"
)

type AnalysisFacade struct {
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(log *logger.Logger) *AnalysisFacade {
	return &AnalysisFacade{Logger: log}
}

// -----------------------------------------------------------------------------

// Prepare slices the series to the requested range and fields and summarizes each column.
// An empty range yields an empty table and no error; callers decide how to report it.
func (a *AnalysisFacade) Prepare(series *models.MTimeSeries, req models.MChartRequest) (*models.MPriceTable, []models.MFieldSummary, error) {
	if series == nil {
		return nil, nil, helpers.NewDataSourceError("no time series", nil)
	}

	symbol := series.Symbol
	if symbol == "" {
		symbol = req.Ticker
	}

	subset := FilterRange(series.Prices, req.StartDate, req.EndDate)
	a.Logger.Debug("%s: %d of %d records between %s and %s",
		symbol, len(subset), len(series.Prices),
		req.StartDate.Format(utils.DateLayout), req.EndDate.Format(utils.DateLayout))

	table, err := SelectFields(symbol, subset, req.Fields)
	if err != nil {
		return nil, nil, fmt.Errorf("select fields: %w", err)
	}

	return table, Summarize(table), nil
}

// -----------------------------------------------------------------------------

// Summarize computes first/last/min/max/mean/std and the change over the range per column.
func Summarize(table *models.MPriceTable) []models.MFieldSummary {
	if table == nil || table.Len() == 0 {
		return nil
	}

	summaries := make([]models.MFieldSummary, 0, len(table.Values))
	for i, values := range table.Values {
		first, last := core.FirstLast(values)
		lo, hi := core.MinMax(values)
		mean, std := core.CalculateMeanStd(values)

		summaries = append(summaries, models.MFieldSummary{
			Column:        table.Columns[i+1],
			First:         first,
			Last:          last,
			Min:           lo,
			Max:           hi,
			Mean:          mean,
			StdDev:        std,
			PercentChange: core.CalculateChangePercent(last, first) * 100,
		})
	}
	return summaries
}
