package network

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"stock-ticker/src/helpers"
	"stock-ticker/src/interfaces"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
)

type NetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Client       *resty.Client
	Logger       *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	nm := &NetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(cfg.Network.Proxies, cfg.Network.UserAgent),
		Logger:       log,
	}
	nm.Client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) createClient() *resty.Client {
	client := resty.New().
		SetTimeout(time.Duration(nm.Config.Network.RequestTimeout) * time.Second).
		SetHeader("Accept", "application/json")

	if nm.ProxyManager.HasProxies() {
		if proxyStr, err := nm.ProxyManager.GetCurrentProxy(); err == nil && proxyStr != "" {
			client.SetProxy(proxyStr)
		}
	}

	return client
}

// -----------------------------------------------------------------------------

// Get performs one GET request. Failures are returned to the caller as-is.
func (nm *NetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	start := time.Now()

	resp, err := nm.Client.R().
		SetContext(ctx).
		SetHeader("User-Agent", nm.ProxyManager.GetUserAgent()).
		SetQueryParams(params).
		Get(urlStr)
	if err != nil {
		nm.Logger.Warning("Request to %s failed: %v", urlStr, err)
		return nil, helpers.NewNetworkError("request failed", err)
	}

	nm.Logger.Debug("GET %s -> %d in %s", urlStr, resp.StatusCode(), time.Since(start))

	if resp.StatusCode() != http.StatusOK {
		nm.Logger.Info("Bad status %d from %s", resp.StatusCode(), urlStr)
		return nil, helpers.NewAPIStatusError(resp.StatusCode(), string(resp.Body()))
	}

	return resp.Body(), nil
}
