// Package server exposes the pricer over HTTP for callers that would
// rather POST a request than shell out to the CLI.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/contactkeval/option-pde/internal/logger"
	"github.com/contactkeval/option-pde/internal/pricing"
	"github.com/contactkeval/option-pde/internal/recorder"
)

// Server holds the REST handlers and their defaults.
type Server struct {
	rec       recorder.Recorder
	defaultNS int
	defaultNT int
}

// New builds a server with grid-size defaults applied to requests
// that leave them unset.
func New(rec recorder.Recorder, defaultNS, defaultNT int) *Server {
	if rec == nil {
		rec = recorder.NoopRecorder{}
	}
	if defaultNS <= 0 {
		defaultNS = 200
	}
	if defaultNT <= 0 {
		defaultNT = 100
	}
	return &Server{rec: rec, defaultNS: defaultNS, defaultNT: defaultNT}
}

// Router wires the routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/price", s.handlePrice).Methods(http.MethodPost)
	return r
}

type priceRequest struct {
	Symbol     string  `json:"symbol,omitempty"`
	Kind       string  `json:"kind"`
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Rate       float64 `json:"rate"`
	Volatility float64 `json:"volatility"`
	Maturity   float64 `json:"maturity"`
	GridNS     int     `json:"grid_ns,omitempty"`
	GridNT     int     `json:"grid_nt,omitempty"`
	Scheme     string  `json:"scheme,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	var in priceRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := pricing.ParseOptionKind(in.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scheme, err := pricing.ParseScheme(in.Scheme)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	nS, nT := in.GridNS, in.GridNT
	if nS <= 0 {
		nS = s.defaultNS
	}
	if nT <= 0 {
		nT = s.defaultNT
	}

	req := pricing.PricingRequest{
		Kind:  kind,
		S0:    in.Spot,
		K:     in.Strike,
		R:     in.Rate,
		Sigma: in.Volatility,
		T:     in.Maturity,
	}

	start := time.Now()
	res, err := pricing.PriceOption(req, nS, nT, scheme)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	logger.Debugf("priced %s %s in %v", in.Symbol, in.Kind, time.Since(start))

	if err := s.rec.RecordPricing(&recorder.PricingRecord{
		Timestamp: time.Now(),
		Symbol:    in.Symbol,
		Kind:      kind.String(),
		Spot:      req.S0,
		Strike:    req.K,
		Rate:      req.R,
		Vol:       req.Sigma,
		Maturity:  req.T,
		Price:     res.Price,
		Analytic:  res.AnalyticPrice,
		AbsError:  res.AbsError,
		Delta:     res.Delta,
		Gamma:     res.Gamma,
		Theta:     res.Theta,
		Vega:      res.Vega,
	}); err != nil {
		logger.Errorf("record pricing: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}
