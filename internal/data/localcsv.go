package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/contactkeval/option-pde/internal/logger"
)

// localCSVProvider implements Provider from per-symbol CSV files on
// disk. Each symbol lives in {dir}/{SYMBOL}.csv with a header row and
// columns date,open,high,low,close,volume (date as 2006-01-02).
type localCSVProvider struct {
	dir       string
	secondary Provider
}

// NewLocalCSVProvider convenience constructor.
func NewLocalCSVProvider(dir string, secondary Provider) Provider {
	return &localCSVProvider{dir: dir, secondary: secondary}
}

func (localCSVProv *localCSVProvider) Secondary() Provider {
	return localCSVProv.secondary
}

func (localCSVProv *localCSVProvider) GetDailyBars(symbol string, fromDate, toDate time.Time) ([]Bar, error) {
	bars, err := localCSVProv.readAll(symbol)
	if err != nil {
		if localCSVProv.secondary != nil {
			logger.Debugf("local CSV miss for %s, falling back: %v", symbol, err)
			return localCSVProv.secondary.GetDailyBars(symbol, fromDate, toDate)
		}
		return nil, err
	}

	var out []Bar
	for _, b := range bars {
		if b.Date.Before(fromDate) || b.Date.After(toDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (localCSVProv *localCSVProvider) LatestClose(symbol string) (float64, error) {
	bars, err := localCSVProv.readAll(symbol)
	if err != nil || len(bars) == 0 {
		if localCSVProv.secondary != nil {
			return localCSVProv.secondary.LatestClose(symbol)
		}
		if err == nil {
			err = fmt.Errorf("no bars for %s in %s", symbol, localCSVProv.dir)
		}
		return 0, err
	}
	return bars[len(bars)-1].Close, nil
}

// readAll parses the whole CSV for a symbol. Rows that fail to parse
// are skipped with a debug log rather than aborting the load.
func (localCSVProv *localCSVProvider) readAll(symbol string) ([]Bar, error) {
	path := filepath.Join(localCSVProv.dir, strings.ToUpper(symbol)+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var bars []Bar
	for i, row := range records {
		if len(row) < 6 {
			continue
		}
		// Skip a header row if present.
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date") {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			logger.Debugf("%s row %d: bad date %q", path, i, row[0])
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				logger.Debugf("%s row %d: bad field %q", path, i, row[j+1])
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		bars = append(bars, Bar{
			Date:   date,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	sortBars(bars)
	return bars, nil
}
