package interfaces

import (
	"io"

	"stock-ticker/src/models"
)

// -----------------------------------------------------------------------------
// IChartRenderer turns a price table into an interactive chart.
// -----------------------------------------------------------------------------

type IChartRenderer interface {

	// RenderSnippet returns the chart element and script for embedding in a page.
	RenderSnippet(table *models.MPriceTable) (models.MChartSnippet, error)

	// -----------------------------------------------------------------------------

	// RenderPage writes a standalone HTML page containing the chart.
	RenderPage(table *models.MPriceTable, w io.Writer) error
}
