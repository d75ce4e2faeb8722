// Package watch bridges a live price feed into the pricer. The feed
// is a plain text file holding the latest spot; the watcher polls it
// on a cron schedule and reprices whenever the value changes.
package watch

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/contactkeval/option-pde/internal/logger"
	"github.com/contactkeval/option-pde/internal/pricing"
)

// Watcher polls a price file and reprices a template request on
// change.
type Watcher struct {
	c        *cron.Cron
	path     string
	base     pricing.PricingRequest
	nS, nT   int
	scheme   pricing.Scheme
	onResult func(spot float64, res *pricing.PricingResult)

	mu       sync.Mutex // serializes poll; cron runs each trigger in its own goroutine
	lastSpot float64
}

// New builds a watcher. The base request's S0 is ignored; every poll
// substitutes the spot read from the file. onResult receives each
// fresh pricing.
func New(path, cronSpec string, base pricing.PricingRequest, nS, nT int, scheme pricing.Scheme,
	onResult func(spot float64, res *pricing.PricingResult)) (*Watcher, error) {

	if onResult == nil {
		return nil, fmt.Errorf("onResult callback is required")
	}
	w := &Watcher{
		c:        cron.New(cron.WithSeconds()),
		path:     path,
		base:     base,
		nS:       nS,
		nT:       nT,
		scheme:   scheme,
		onResult: onResult,
	}
	if _, err := w.c.AddFunc(cronSpec, w.poll); err != nil {
		return nil, fmt.Errorf("register poll schedule: %w", err)
	}
	return w, nil
}

// Start begins polling on the cron schedule.
func (w *Watcher) Start() {
	w.c.Start()
	logger.Infof("watching %s", w.path)
}

// Stop stops the scheduler; a poll in flight finishes first.
func (w *Watcher) Stop() {
	ctx := w.c.Stop()
	<-ctx.Done()
	logger.Infof("watcher stopped")
}

// Poll reads the file and reprices once, regardless of schedule.
// Exposed for manual triggering and tests.
func (w *Watcher) Poll() {
	w.poll()
}

func (w *Watcher) poll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	spot, err := readSpot(w.path)
	if err != nil {
		logger.Errorf("read price file: %v", err)
		return
	}
	if spot == w.lastSpot {
		logger.Tracef("spot unchanged at %.4f", spot)
		return
	}

	req := w.base
	req.S0 = spot
	res, err := pricing.PriceOption(req, w.nS, w.nT, w.scheme)
	if err != nil {
		logger.Errorf("reprice at spot %.4f: %v", spot, err)
		return
	}
	w.lastSpot = spot
	logger.Debugf("repriced at spot %.4f: price %.4f", spot, res.Price)
	w.onResult(spot, res)
}

// readSpot parses the first token of the file as a float.
func readSpot(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%s is empty", path)
	}
	spot, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", fields[0], err)
	}
	return spot, nil
}
