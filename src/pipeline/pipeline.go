package pipeline

import (
	"context"
	"fmt"
	"time"

	"stock-ticker/src/analysis"
	"stock-ticker/src/helpers"
	"stock-ticker/src/interfaces"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/utils"
)

// Pipeline turns a validated chart request into a rendered chart.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	Source   interfaces.IDataSource
	Analyzer *analysis.AnalysisFacade
	Renderer interfaces.IChartRenderer
	Markets  *utils.MarketScheduler
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPipeline(
	source interfaces.IDataSource,
	analyzer *analysis.AnalysisFacade,
	renderer interfaces.IChartRenderer,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		Source:   source,
		Analyzer: analyzer,
		Renderer: renderer,
		Markets:  utils.NewMarketScheduler(log),
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

// Prepare fetches the series and slices it, without rendering.
func (p *Pipeline) Prepare(ctx context.Context, req models.MChartRequest) (*models.MChartResult, error) {
	startTime := time.Now()

	series, err := p.Source.FetchDailySeries(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}

	table, summaries, err := p.Analyzer.Prepare(series, req)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, helpers.NewValidationError(helpers.ReasonNoData,
			fmt.Sprintf("no %s prices between %s and %s", req.Ticker,
				req.StartDate.Format(utils.DateLayout), req.EndDate.Format(utils.DateLayout)))
	}

	result := &models.MChartResult{
		Request:     req,
		Table:       table,
		Summaries:   summaries,
		TradingDays: p.Markets.TradingSessions(req.Ticker, table.Dates[0], table.Dates[table.Len()-1]),
	}

	p.Logger.Info("%s: prepared %d rows from %s in %v", req.Ticker, table.Len(), p.Source.Name(), time.Since(startTime))
	return result, nil
}

// -----------------------------------------------------------------------------

// Run prepares the data and renders the embeddable chart.
func (p *Pipeline) Run(ctx context.Context, req models.MChartRequest) (*models.MChartResult, error) {
	result, err := p.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	snippet, err := p.Renderer.RenderSnippet(result.Table)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	result.Snippet = snippet
	return result, nil
}
