package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/utils"
)

// Set1 is the qualitative palette lines are colored from, in order.
var Set1 = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
	"#ffff33", "#a65628", "#f781bf", "#999999",
}

type LineChartBuilder struct {
	Config models.MChartConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewLineChartBuilder(cfg models.MChartConfig, log *logger.Logger) *LineChartBuilder {
	return &LineChartBuilder{Config: cfg, Logger: log}
}

// -----------------------------------------------------------------------------

// Title returns the chart heading for a symbol.
func (b *LineChartBuilder) Title(symbol string) string {
	label := b.Config.ProviderLabel
	if label == "" {
		label = "AlphaVantage"
	}
	return fmt.Sprintf("%s Stock Prices - %s", label, symbol)
}

// -----------------------------------------------------------------------------

// SeriesName is the legend label of one column, e.g. "AAPL-Close".
func SeriesName(symbol, column string) string {
	return symbol + "-" + column
}

// -----------------------------------------------------------------------------

func (b *LineChartBuilder) RenderSnippet(table *models.MPriceTable) (models.MChartSnippet, error) {
	line, err := b.build(table)
	if err != nil {
		return models.MChartSnippet{}, err
	}

	snippet := line.RenderSnippet()
	return models.MChartSnippet{Element: snippet.Element, Script: snippet.Script}, nil
}

// -----------------------------------------------------------------------------

func (b *LineChartBuilder) RenderPage(table *models.MPriceTable, w io.Writer) error {
	line, err := b.build(table)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (b *LineChartBuilder) build(table *models.MPriceTable) (*charts.Line, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}
	if len(table.Columns) != len(table.Values)+1 {
		return nil, fmt.Errorf("table has %d columns but %d value series", len(table.Columns), len(table.Values))
	}

	title := b.Title(table.Symbol)
	first := table.Dates[0].Format(utils.DateLayout)
	last := table.Dates[table.Len()-1].Format(utils.DateLayout)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  title,
			Width:      b.Config.Width,
			Height:     b.Config.Height,
			AssetsHost: b.Config.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: first + " to " + last,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside", Start: 0, End: 100},
			opts.DataZoom{Type: "slider", Start: 0, End: 100},
		),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true), Name: table.Symbol},
				DataZoom:    &opts.ToolBoxFeatureDataZoom{Show: opts.Bool(true)},
				Restore:     &opts.ToolBoxFeatureRestore{Show: opts.Bool(true)},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Price",
			AxisLabel: &opts.AxisLabel{Formatter: "${value}"},
		}),
	)

	xAxis := make([]string, table.Len())
	for i, d := range table.Dates {
		xAxis[i] = d.Format(utils.DateLayout)
	}
	line.SetXAxis(xAxis)

	for i, values := range table.Values {
		data := make([]opts.LineData, len(values))
		for j, v := range values {
			data[j] = opts.LineData{Value: v}
		}

		color := Set1[i%len(Set1)]
		line.AddSeries(SeriesName(table.Symbol, table.Columns[i+1]), data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
	}

	b.Logger.Debug("built chart %q with %d series over %d dates", title, len(table.Values), table.Len())
	return line, nil
}
