package pipeline

import (
	"fmt"

	"stock-ticker/src/analysis"
	"stock-ticker/src/chart"
	datasource "stock-ticker/src/data_source"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/network"
)

// -----------------------------------------------------------------------------

// Build wires network manager, data source, analysis and chart renderer from config.
func Build(cfg *models.MConfig, log *logger.Logger) (*Pipeline, error) {
	netMgr := network.NewNetworkManager(cfg, log.Named("NetworkManager"))

	source, err := datasource.NewDataSource(cfg.DataSource, netMgr, log)
	if err != nil {
		return nil, fmt.Errorf("setup data source: %w", err)
	}

	analyzer := analysis.NewAnalysisFacade(log.Named("Analysis"))
	renderer := chart.NewLineChartBuilder(cfg.Chart, log.Named("Chart"))

	log.Info("Pipeline ready with data source %s", source.Name())
	return NewPipeline(source, analyzer, renderer, log.Named("Pipeline")), nil
}
