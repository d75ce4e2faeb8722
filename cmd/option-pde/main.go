package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/contactkeval/option-pde/internal/backtest"
	"github.com/contactkeval/option-pde/internal/calibrate"
	"github.com/contactkeval/option-pde/internal/config"
	"github.com/contactkeval/option-pde/internal/data"
	"github.com/contactkeval/option-pde/internal/forecast"
	"github.com/contactkeval/option-pde/internal/logger"
	"github.com/contactkeval/option-pde/internal/pricing"
	"github.com/contactkeval/option-pde/internal/recorder"
	"github.com/contactkeval/option-pde/internal/report"
	"github.com/contactkeval/option-pde/internal/server"
	"github.com/contactkeval/option-pde/internal/signals"
	"github.com/contactkeval/option-pde/internal/watch"
)

func main() {
	mode := flag.String("mode", "price", "price | backtest | forecast | watch | serve")
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	kindFlag := flag.String("kind", "call", "option kind: call or put")
	spot := flag.Float64("spot", 0, "spot price (0 = latest close from provider)")
	strike := flag.Float64("strike", 0, "strike (0 = at the money)")
	days := flag.Int("days", 0, "days to expiry (0 = config default)")
	outDir := flag.String("out", "reports", "output directory for backtest reports")
	verbosity := flag.Int("v", 1, "log verbosity (0=error, 1=info, 2=debug, 3=trace)")
	flag.Parse()

	logger.SetVerbosity(*verbosity)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	kind, err := pricing.ParseOptionKind(*kindFlag)
	if err != nil {
		log.Fatalf("invalid kind: %v", err)
	}
	scheme, err := pricing.ParseScheme(cfg.Pricing.Scheme)
	if err != nil {
		log.Fatalf("invalid scheme: %v", err)
	}
	if *days == 0 {
		*days = cfg.Pricing.DaysToExpiry
	}
	if *strike == 0 {
		*strike = cfg.Pricing.Strike
	}

	prov := chooseProvider(cfg)

	switch *mode {
	case "price":
		runPrice(cfg, prov, kind, scheme, *spot, *strike, *days)
	case "backtest":
		runBacktest(cfg, prov, kind, scheme, *strike, *days, *outDir)
	case "forecast":
		runForecast(cfg, prov, *days)
	case "watch":
		runWatch(cfg, prov, kind, scheme, *strike, *days)
	case "serve":
		runServe(cfg)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// chooseProvider picks local CSV, polygon, or synthetic bars in that
// order of preference.
func chooseProvider(cfg *config.Config) data.Provider {
	if cfg.Data.CSVDir != "" {
		log.Printf("[info] local CSV provider enabled (%s)", cfg.Data.CSVDir)
		return data.NewLocalCSVProvider(cfg.Data.CSVDir, data.NewSyntheticProvider(time.Now().UnixNano()))
	}
	if cfg.Data.PolygonKey != "" {
		log.Printf("[info] polygon provider enabled")
		return data.NewPolygonDataProvider(cfg.Data.PolygonKey)
	}
	log.Printf("[info] synthetic provider enabled")
	return data.NewSyntheticProvider(time.Now().UnixNano())
}

// fetchCalibration pulls a trailing year of bars and calibrates model
// parameters for the given maturity.
func fetchCalibration(cfg *config.Config, prov data.Provider, maturity float64) (*calibrate.Calibration, []data.Bar) {
	to := time.Now()
	from := to.AddDate(-1, 0, 0)
	bars, err := prov.GetDailyBars(cfg.Data.Symbol, from, to)
	if err != nil {
		log.Fatalf("fetching bars for %s: %v", cfg.Data.Symbol, err)
	}
	cal, err := calibrate.Calibrate(bars, maturity)
	if err != nil {
		log.Fatalf("calibrating %s: %v", cfg.Data.Symbol, err)
	}
	return cal, bars
}

func runPrice(cfg *config.Config, prov data.Provider, kind pricing.OptionKind, scheme pricing.Scheme, spot, strike float64, days int) {
	maturity := float64(days) / float64(calibrate.TradingDays)
	cal, bars := fetchCalibration(cfg, prov, maturity)

	if spot == 0 {
		spot = bars[len(bars)-1].Close
	}
	if strike == 0 {
		strike = spot
	}

	req := pricing.PricingRequest{
		Kind:  kind,
		S0:    spot,
		K:     strike,
		R:     cal.RiskFreeRate,
		Sigma: cal.Volatility,
		T:     maturity,
	}
	res, err := pricing.PriceOption(req, cfg.Grid.NS, cfg.Grid.NT, scheme)
	if err != nil {
		log.Fatalf("pricing failed: %v", err)
	}

	if summary, err := signals.Summarize(data.Closes(bars)); err == nil {
		log.Printf("[info] %s signal: %s (RSI14 %.1f)", cfg.Data.Symbol, summary.Signal, summary.RSI14)
	}

	log.Printf("[info] %s %s K=%.2f T=%.3fy sigma=%.4f r=%.4f", cfg.Data.Symbol, kind, strike, maturity, cal.Volatility, cal.RiskFreeRate)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
}

func runBacktest(cfg *config.Config, prov data.Provider, kind pricing.OptionKind, scheme pricing.Scheme, strike float64, days int, outDir string) {
	btCfg := &backtest.Config{
		Symbol:       cfg.Data.Symbol,
		Kind:         kind,
		Strike:       strike,
		DaysToExpiry: days,
		GridNS:       cfg.Grid.NS,
		GridNT:       cfg.Grid.NT,
		Scheme:       scheme,
	}
	engine := backtest.NewEngine(btCfg, prov)

	to := time.Now()
	from := to.AddDate(0, -6, 0)
	start := time.Now()
	res, err := engine.Run(from, to)
	if err != nil {
		log.Fatalf("backtest failed: %v", err)
	}

	if path := cfg.Database.SQLitePath; path != "" {
		if err := recordBacktest(path, res); err != nil {
			log.Printf("[warn] recording backtest: %v", err)
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Printf("[warn] could not create output dir %s: %v", outDir, err)
	}
	_ = report.WriteJSON(res, outDir)
	_ = report.WriteCSV(res, outDir)
	log.Printf("[done] finished in %v, %d observations (mean abs err %.4f) to %s",
		time.Since(start), len(res.Observations), res.MeanAbsError, outDir)
}

func recordBacktest(dbPath string, res *backtest.Result) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return err
	}
	rec, err := recorder.NewSQLiteRecorder(dbPath)
	if err != nil {
		return err
	}
	defer rec.Close()

	records := make([]recorder.BacktestRecord, 0, len(res.Observations))
	for _, o := range res.Observations {
		records = append(records, recorder.BacktestRecord{
			Symbol:   res.Symbol,
			Date:     o.Date,
			Spot:     o.Spot,
			Strike:   res.Strike,
			Price:    o.Price,
			Analytic: o.AnalyticPrice,
			AbsError: o.AbsError,
		})
	}
	return rec.RecordBacktest(records)
}

func runForecast(cfg *config.Config, prov data.Provider, days int) {
	maturity := float64(days) / float64(calibrate.TradingDays)
	cal, bars := fetchCalibration(cfg, prov, maturity)
	s0 := bars[len(bars)-1].Close

	fc, err := forecast.SimulateGBM(s0, cal.Drift, cal.Volatility, days, 5000, time.Now().UnixNano())
	if err != nil {
		log.Fatalf("forecast failed: %v", err)
	}
	log.Printf("[info] %s %d-day forecast from %.2f (drift %.4f, vol %.4f)", cfg.Data.Symbol, days, s0, cal.Drift, cal.Volatility)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(fc)
}

func runWatch(cfg *config.Config, prov data.Provider, kind pricing.OptionKind, scheme pricing.Scheme, strike float64, days int) {
	if cfg.Watch.PriceFile == "" {
		log.Fatalf("watch.price_file is required for watch mode")
	}
	if strike == 0 {
		log.Fatalf("a nonzero strike is required for watch mode")
	}
	maturity := float64(days) / float64(calibrate.TradingDays)
	cal, _ := fetchCalibration(cfg, prov, maturity)
	base := pricing.PricingRequest{
		Kind:  kind,
		K:     strike,
		R:     cal.RiskFreeRate,
		Sigma: cal.Volatility,
		T:     maturity,
	}

	w, err := watch.New(cfg.Watch.PriceFile, cfg.Watch.Cron, base, cfg.Grid.NS, cfg.Grid.NT, scheme,
		func(spot float64, res *pricing.PricingResult) {
			log.Printf("[info] spot %.4f price %.4f delta %.4f", spot, res.Price, res.Delta)
		})
	if err != nil {
		log.Fatalf("starting watcher: %v", err)
	}
	w.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	w.Stop()
}

func runServe(cfg *config.Config) {
	var rec recorder.Recorder
	if path := cfg.Database.SQLitePath; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if sq, err := recorder.NewSQLiteRecorder(path); err == nil {
				rec = sq
				defer sq.Close()
				log.Printf("[info] recording pricings to %s", path)
			} else {
				log.Printf("[warn] sqlite recorder unavailable: %v", err)
			}
		}
	}

	srv := server.New(rec, cfg.Grid.NS, cfg.Grid.NT)
	log.Printf("[info] starting REST server on %s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, srv.Router()))
}
