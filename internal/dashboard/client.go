// Package dashboard serves the climate dashboard. It reads everything through
// the weather proxy and derives merged records and extreme events locally.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gustavopmaia/gs-andre/internal/weather"
)

// ErrLoadFailed is returned for any proxy failure: transport, status or decode.
var ErrLoadFailed = errors.New("dashboard: failed to load data from proxy")

const maxBodyBytes = 8 << 20

// ProxyClient talks to the weather proxy.
type ProxyClient struct {
	baseURL string
	client  *http.Client
}

// NewProxyClient creates a client for the proxy at baseURL. A nil client uses
// http.DefaultClient.
func NewProxyClient(baseURL string, client *http.Client) *ProxyClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ProxyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// ClimateData fetches /dados-climaticos.
func (c *ProxyClient) ClimateData(ctx context.Context) (weather.ClimateData, error) {
	var data weather.ClimateData
	if err := c.getJSON(ctx, "/dados-climaticos", &data); err != nil {
		return weather.ClimateData{}, err
	}
	return data, nil
}

// Forecast fetches /previsao-tempo.
func (c *ProxyClient) Forecast(ctx context.Context) (weather.DailySeries, error) {
	var daily weather.DailySeries
	if err := c.getJSON(ctx, "/previsao-tempo", &daily); err != nil {
		return weather.DailySeries{}, err
	}
	return daily, nil
}

// Current fetches /dados-atuais. A null body yields nil, nil.
func (c *ProxyClient) Current(ctx context.Context) (*weather.CurrentConditions, error) {
	var current *weather.CurrentConditions
	if err := c.getJSON(ctx, "/dados-atuais", &current); err != nil {
		return nil, err
	}
	return current, nil
}

func (c *ProxyClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFailed, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoadFailed, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("%w: %s: status %d", ErrLoadFailed, path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrLoadFailed, path, err)
	}
	return nil
}
