package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"bandwatch/internal/logger"
	"bandwatch/internal/models"
	"bandwatch/internal/observability"

	"github.com/go-resty/resty/v2"
)

const (
	sourceHamQSL   = "hamqsl"
	sourceForecast = "forecast"

	transportDirect = "direct"
	transportRelay  = "relay"
)

// HamQSLFetcher downloads the HamQSL solar XML. The primary endpoint sends no
// CORS headers, so a relay that reissues the same request is tried once when
// the direct request fails.
type HamQSLFetcher struct {
	client   *resty.Client
	url      string
	relayURL string
	metrics  *observability.Metrics
	log      *logger.Logger
}

// NewHamQSLFetcher creates a HamQSL fetcher. An empty relayURL disables the fallback.
func NewHamQSLFetcher(client *resty.Client, primaryURL, relayURL string, metrics *observability.Metrics) *HamQSLFetcher {
	return &HamQSLFetcher{
		client:   client,
		url:      primaryURL,
		relayURL: relayURL,
		metrics:  metrics,
		log:      logger.GetGlobalLogger().WithComponent("fetchers"),
	}
}

// RelayTarget builds the relay request URL. Prefix-style relays such as
// "https://corsproxy.io/?" get the escaped upstream URL appended; any other
// relay URL already knows its upstream and is used unchanged.
func RelayTarget(relayURL, primaryURL string) string {
	if strings.HasSuffix(relayURL, "?") || strings.HasSuffix(relayURL, "=") {
		return relayURL + url.QueryEscape(primaryURL)
	}
	return relayURL
}

// Fetch returns the raw XML body. When both transports fail the error is a
// *models.FetchError of kind network naming both attempts.
func (f *HamQSLFetcher) Fetch(ctx context.Context) (string, error) {
	start := time.Now()
	defer func() {
		f.metrics.FetchDuration.WithLabelValues(sourceHamQSL).Observe(time.Since(start).Seconds())
	}()

	body, directErr := f.get(ctx, f.url, transportDirect)
	if directErr == nil {
		return body, nil
	}

	if f.relayURL == "" {
		return "", models.NewFetchError(models.NetworkError,
			fmt.Sprintf("direct request failed: %v", directErr), directErr)
	}

	f.log.Warn("Direct HamQSL request failed, trying relay", map[string]interface{}{
		"error": directErr.Error(),
	})

	body, relayErr := f.get(ctx, RelayTarget(f.relayURL, f.url), transportRelay)
	if relayErr == nil {
		return body, nil
	}

	return "", models.NewFetchError(models.NetworkError,
		fmt.Sprintf("direct request failed: %v; relay request failed: %v", directErr, relayErr),
		errors.Join(directErr, relayErr))
}

func (f *HamQSLFetcher) get(ctx context.Context, target, transport string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/xml, text/xml").
		Get(target)

	if err != nil {
		f.metrics.FetchAttempts.WithLabelValues(sourceHamQSL, transport, "error").Inc()
		return "", fmt.Errorf("%s: %w", transport, err)
	}

	if !resp.IsSuccess() {
		f.metrics.FetchAttempts.WithLabelValues(sourceHamQSL, transport, "error").Inc()
		bodyLen := len(resp.Body())
		if bodyLen > 200 {
			bodyLen = 200
		}
		f.log.Warnf("HamQSL %s request returned status %d, response: %s", transport, resp.StatusCode(), string(resp.Body()[:bodyLen]))
		return "", fmt.Errorf("%s: HTTP %d", transport, resp.StatusCode())
	}

	f.metrics.FetchAttempts.WithLabelValues(sourceHamQSL, transport, "success").Inc()
	f.log.Debug("HamQSL body received", map[string]interface{}{
		"transport": transport,
		"bytes":     len(resp.Body()),
	})
	return resp.String(), nil
}
