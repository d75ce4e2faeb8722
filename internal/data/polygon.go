package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/contactkeval/option-pde/internal/logger"
)

// polygonDataProvider implements Provider using the Polygon.io
// aggregates API over raw HTTP.
type polygonDataProvider struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	secondary Provider
}

// NewPolygonDataProvider constructs a Polygon-backed provider.
func NewPolygonDataProvider(apiKey string) Provider {
	logger.Infof("initializing polygon data provider")
	return &polygonDataProvider{
		apiKey:  apiKey,
		baseURL: "https://api.polygon.io",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (polygonDataProv *polygonDataProvider) Secondary() Provider {
	return polygonDataProv.secondary
}

type polygonAggsResp struct {
	Ticker  string `json:"ticker"`
	Status  string `json:"status"`
	Results []struct {
		Open   float64 `json:"o"`
		High   float64 `json:"h"`
		Low    float64 `json:"l"`
		Close  float64 `json:"c"`
		Volume float64 `json:"v"`
		Ts     int64   `json:"t"` // epoch millis
	} `json:"results"`
}

func (polygonDataProv *polygonDataProvider) GetDailyBars(symbol string, fromDate, toDate time.Time) ([]Bar, error) {
	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=50000&apiKey=%s",
		polygonDataProv.baseURL, symbol,
		fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"),
		polygonDataProv.apiKey)

	resp, err := polygonDataProv.client.Get(url)
	if err != nil {
		if polygonDataProv.secondary != nil {
			logger.Debugf("polygon request failed, falling back: %v", err)
			return polygonDataProv.secondary.GetDailyBars(symbol, fromDate, toDate)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polygon aggregates: status %d", resp.StatusCode)
	}

	var parsed polygonAggsResp
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode polygon response: %w", err)
	}

	bars := make([]Bar, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		bars = append(bars, Bar{
			Date:   time.UnixMilli(r.Ts).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	sortBars(bars)
	logger.Debugf("polygon: %d bars for %s", len(bars), symbol)
	return bars, nil
}

func (polygonDataProv *polygonDataProvider) LatestClose(symbol string) (float64, error) {
	// Trailing two weeks comfortably covers the most recent session.
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -14)
	bars, err := polygonDataProv.GetDailyBars(symbol, from, to)
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("no recent bars for %s", symbol)
	}
	return bars[len(bars)-1].Close, nil
}
