package helpers

import "testing"

func TestNewProxyManagerFiltersInvalid(t *testing.T) {
	pm := NewProxyManager([]string{"", "ftp://10.0.0.1:21", "10.0.0.2:8080", "socks5://10.0.0.3:1080"}, "")

	if !pm.HasProxies() {
		t.Fatal("expected valid proxies to be kept")
	}
	got, err := pm.GetCurrentProxy()
	if err != nil {
		t.Fatalf("GetCurrentProxy: %v", err)
	}
	if got != "http://10.0.0.2:8080" {
		t.Errorf("GetCurrentProxy() = %q, want http://10.0.0.2:8080", got)
	}
}

func TestProxyManagerWithoutProxies(t *testing.T) {
	pm := NewProxyManager(nil, "")
	if pm.HasProxies() {
		t.Error("HasProxies() = true with no proxies")
	}
	if got, _ := pm.GetCurrentProxy(); got != "" {
		t.Errorf("GetCurrentProxy() = %q, want empty", got)
	}
}

func TestFixedUserAgent(t *testing.T) {
	pm := NewProxyManager(nil, "stock-ticker/1.0")
	for i := 0; i < 5; i++ {
		if ua := pm.GetUserAgent(); ua != "stock-ticker/1.0" {
			t.Fatalf("GetUserAgent() = %q", ua)
		}
	}
}
