package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-pde/internal/backtest"
)

// WriteJSON writes the full backtest result as indented JSON.
func WriteJSON(res *backtest.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "backtest.json"), b, 0644)
}

// WriteCSV writes one row per observation.
func WriteCSV(res *backtest.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "observations.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"date", "spot", "volatility", "price", "analytic_price", "abs_error", "delta", "gamma"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, o := range res.Observations {
		row := []string{
			o.Date.Format("2006-01-02"),
			fmt.Sprintf("%.4f", o.Spot),
			fmt.Sprintf("%.6f", o.Volatility),
			fmt.Sprintf("%.6f", o.Price),
			fmt.Sprintf("%.6f", o.AnalyticPrice),
			fmt.Sprintf("%.6f", o.AbsError),
			fmt.Sprintf("%.6f", o.Delta),
			fmt.Sprintf("%.6f", o.Gamma),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
