package data

import (
	"math"
	"math/rand"
	"time"
)

// synthDataProvider implements Provider generating synthetic bars via
// a daily geometric random walk. Useful for demos and tests when no
// market data is on hand.
type synthDataProvider struct {
	rng       *rand.Rand
	secondary Provider
}

// NewSyntheticProvider returns a seeded synthetic provider; identical
// seeds reproduce identical bar series.
func NewSyntheticProvider(seed int64) Provider {
	return &synthDataProvider{rng: rand.New(rand.NewSource(seed))}
}

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) GetDailyBars(symbol string, fromDate, toDate time.Time) ([]Bar, error) {
	cur := fromDate
	price := 100.0 + float64(synthDataProv.rng.Intn(200))
	var out []Bar
	for !cur.After(toDate) {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			delta := synthDataProv.rng.NormFloat64() * 0.01 * price
			open := price
			close := price + delta
			high := math.Max(open, close) + math.Abs(synthDataProv.rng.NormFloat64()*0.3)
			low := math.Min(open, close) - math.Abs(synthDataProv.rng.NormFloat64()*0.3)
			out = append(out, Bar{
				Date: cur, Open: open, High: high, Low: low,
				Close: close, Volume: float64(1000 + synthDataProv.rng.Intn(5000)),
			})
			price = close
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out, nil
}

func (synthDataProv *synthDataProvider) LatestClose(symbol string) (float64, error) {
	to := time.Now().UTC()
	bars, err := synthDataProv.GetDailyBars(symbol, to.AddDate(0, 0, -7), to)
	if err != nil {
		return 0, err
	}
	return bars[len(bars)-1].Close, nil
}
