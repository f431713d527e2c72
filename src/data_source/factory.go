package datasource

import (
	"fmt"

	"stock-ticker/src/data_source/alphavantage"
	"stock-ticker/src/data_source/yahoo"
	"stock-ticker/src/interfaces"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
)

// NewDataSource builds the provider named in cfg.Name.
func NewDataSource(cfg models.MDataSourceConfig, netMgr interfaces.INetworkManager, log *logger.Logger) (interfaces.IDataSource, error) {
	switch cfg.Name {
	case "alphavantage", "":
		return alphavantage.NewAlphaVantageSource(cfg, netMgr, log.Named("AlphaVantageSource")), nil
	case "yahoo":
		return yahoo.NewYahooFinanceSource(cfg, netMgr, log.Named("YahooFinanceSource")), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Name)
	}
}
