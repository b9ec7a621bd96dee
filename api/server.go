// Package api exposes the bot's read-only state over HTTP: cached rates,
// market condition snapshots, sizing queries and Prometheus metrics.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tradebot/analysis"
	"tradebot/broker"
	"tradebot/market"
	"tradebot/rates"
	"tradebot/risk"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultRatesCount = 100

// Server wires the domain services into an HTTP handler.
type Server struct {
	source   broker.QuoteSource
	cache    *rates.Cache
	analyzer *analysis.Analyzer
	sizer    *risk.Sizer
	advisor  *risk.CapacityAdvisor
	log      *zap.Logger
}

// NewServer creates the HTTP surface over the given services.
func NewServer(source broker.QuoteSource, cache *rates.Cache, analyzer *analysis.Analyzer, sizer *risk.Sizer, advisor *risk.CapacityAdvisor, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		source:   source,
		cache:    cache,
		analyzer: analyzer,
		sizer:    sizer,
		advisor:  advisor,
		log:      log,
	}
}

// Router returns the configured route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/rates/{symbol}/{timeframe}", s.handleRates).Methods(http.MethodGet)
	v1.HandleFunc("/analysis/{symbol}", s.handleAnalysis).Methods(http.MethodGet)
	v1.HandleFunc("/size", s.handleSize).Methods(http.MethodPost)
	v1.HandleFunc("/maxlot/{symbol}", s.handleMaxLot).Methods(http.MethodGet)
	v1.HandleFunc("/price/{symbol}", s.handlePrice).Methods(http.MethodGet)
	v1.HandleFunc("/spread/{symbol}", s.handleSpread).Methods(http.MethodGet)
	v1.HandleFunc("/market-open/{symbol}", s.handleMarketOpen).Methods(http.MethodGet)
	v1.HandleFunc("/account", s.handleAccount).Methods(http.MethodGet)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("api: encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type candleResponse struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

type ratesResponse struct {
	Symbol    string           `json:"symbol"`
	Timeframe string           `json:"timeframe"`
	Candles   []candleResponse `json:"candles"`
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	tf, err := market.ParseTimeframe(vars["timeframe"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	count := defaultRatesCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil || count <= 0 {
			s.writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
	}

	candles, err := s.cache.Get(r.Context(), symbol, tf, count)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	resp := ratesResponse{
		Symbol:    symbol,
		Timeframe: string(tf),
		Candles:   make([]candleResponse, len(candles)),
	}
	for i, c := range candles {
		resp.Candles[i] = candleResponse{
			Time: c.Time, Open: c.Open, High: c.High,
			Low: c.Low, Close: c.Close, Volume: c.Volume,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type analysisResponse struct {
	Symbol     string `json:"symbol"`
	Condition  string `json:"condition"`
	Trend      string `json:"trend"`
	Volatility string `json:"volatility"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	cond := s.analyzer.Analyze(r.Context(), symbol)
	s.writeJSON(w, http.StatusOK, analysisResponse{
		Symbol:     symbol,
		Condition:  string(cond.Condition),
		Trend:      string(cond.Trend),
		Volatility: string(cond.Volatility),
	})
}

type sizeRequest struct {
	Symbol      string  `json:"symbol"`
	EntryPrice  float64 `json:"entry_price"`
	StopLoss    float64 `json:"stop_loss"`
	RiskPercent float64 `json:"risk_percent"`
}

type sizeResponse struct {
	Symbol     string  `json:"symbol"`
	Lots       float64 `json:"lots"`
	Policy     string  `json:"policy"`
	RiskAmount float64 `json:"risk_amount"`
	RiskPips   float64 `json:"risk_pips"`
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" {
		s.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	result := s.sizer.LotSize(r.Context(), risk.SizingRequest{
		Symbol:      req.Symbol,
		EntryPrice:  req.EntryPrice,
		StopLoss:    req.StopLoss,
		RiskPercent: req.RiskPercent,
	})
	s.writeJSON(w, http.StatusOK, sizeResponse{
		Symbol:     req.Symbol,
		Lots:       result.Lots,
		Policy:     string(result.Policy),
		RiskAmount: result.RiskAmount,
		RiskPips:   result.RiskPips,
	})
}

func (s *Server) handleMaxLot(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	lots := s.advisor.MaxLotSize(r.Context(), symbol)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"symbol":   symbol,
		"max_lots": lots,
	})
}

type priceResponse struct {
	Symbol string  `json:"symbol"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Mid    float64 `json:"mid"`
	Spread float64 `json:"spread"`
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	quote, err := s.source.GetCurrentPrice(r.Context(), symbol)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, priceResponse{
		Symbol: symbol,
		Bid:    quote.Bid,
		Ask:    quote.Ask,
		Mid:    quote.Mid(),
		Spread: quote.Spread(),
	})
}

func (s *Server) handleSpread(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	spread, err := s.source.GetSpread(r.Context(), symbol)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"spread": spread,
	})
}

func (s *Server) handleMarketOpen(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	open, err := s.source.IsMarketOpen(r.Context(), symbol)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"open":   open,
	})
}

type accountResponse struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	FreeMargin float64 `json:"free_margin"`
	Currency   string  `json:"currency"`
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := s.source.GetAccountInfo(r.Context())
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, accountResponse{
		Balance:    acct.Balance,
		Equity:     acct.Equity,
		FreeMargin: acct.FreeMargin,
		Currency:   acct.Currency,
	})
}
