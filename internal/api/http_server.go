package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Mantelijo/whale-alert/internal/asset"
	"github.com/Mantelijo/whale-alert/internal/chain"
	"github.com/Mantelijo/whale-alert/internal/whale"
	"github.com/shopspring/decimal"
)

const serviceName = "Whale Alert API"

func NewHttpServer(
	addr, port string,
	events EventReader,
	tokens *asset.Registry,
	status StatusReader,
	stream Streamer,
	opts ...HttpServerOption,
) *httpServer {
	s := &httpServer{
		addr:   addr,
		port:   port,
		events: events,
		tokens: tokens,
		status: status,
		stream: stream,
		srv:    &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt.Apply(s)
	}
	return s
}

var _ Server = (*httpServer)(nil)

type httpServer struct {
	addr string
	port string

	events EventReader
	tokens *asset.Registry
	status StatusReader
	stream Streamer

	nativeSymbol   string
	metricsHandler http.Handler

	srv *http.Server
}

func (s *httpServer) Serve() error {
	router := http.NewServeMux()
	s.registerRoutes(router)
	return s.startServer(withCORS(router))
}

func (s *httpServer) startServer(h http.Handler) error {
	bindAddr := net.JoinHostPort(s.addr, s.port)

	l, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return err
	}
	s.port = strconv.Itoa(l.Addr().(*net.TCPAddr).Port)

	s.srv.Handler = h

	slog.Info("starting http api server",
		slog.String("addr", s.addr),
		slog.String("port", s.port),
	)

	if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *httpServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *httpServer) Close() error {
	return s.srv.Close()
}

func (s *httpServer) registerRoutes(r *http.ServeMux) {
	r.HandleFunc("GET /{$}", s.banner)
	r.HandleFunc("GET /api/whale-transactions", s.whaleTransactions)
	r.HandleFunc("GET /api/whale-transactions/{token}", s.whaleTransactionsByToken)
	r.HandleFunc("GET /api/tokens", s.listTokens)
	r.HandleFunc("GET /api/network-status", s.networkStatus)
	if s.stream != nil {
		r.HandleFunc("GET /ws", s.stream.ServeWS)
	}
	if s.metricsHandler != nil {
		r.Handle("GET /metrics", s.metricsHandler)
	}
}

type BannerResponse struct {
	Message          string `json:"message"`
	Status           string `json:"status"`
	ConnectedClients int    `json:"connectedClients"`
}

func (s *httpServer) banner(w http.ResponseWriter, r *http.Request) {
	clients := 0
	if s.stream != nil {
		clients = s.stream.Count()
	}
	writeJSON(w, http.StatusOK, BannerResponse{
		Message:          serviceName,
		Status:           "running",
		ConnectedClients: clients,
	})
}

type TransactionsResponse struct {
	Token        string              `json:"token,omitempty"`
	Transactions []*whale.WhaleEvent `json:"transactions"`
	Count        int                 `json:"count"`
}

func (s *httpServer) whaleTransactions(w http.ResponseWriter, r *http.Request) {
	events := s.events.Snapshot()
	writeJSON(w, http.StatusOK, TransactionsResponse{
		Transactions: events,
		Count:        len(events),
	})
}

// whaleTransactionsByToken accepts a symbol or a registered contract address.
func (s *httpServer) whaleTransactionsByToken(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	if token == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "token is required"})
		return
	}
	if s.tokens != nil {
		if d := s.tokens.LookupHex(token); d != nil {
			token = d.Symbol
		}
	}
	token = strings.ToUpper(token)

	events := s.events.FilterByAsset(token)
	writeJSON(w, http.StatusOK, TransactionsResponse{
		Token:        token,
		Transactions: events,
		Count:        len(events),
	})
}

type TokenResponse struct {
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Decimals       uint8           `json:"decimals"`
	Category       string          `json:"category"`
	Priority       string          `json:"priority"`
	WhaleThreshold decimal.Decimal `json:"whaleThreshold"`
}

type TokensResponse struct {
	Native string          `json:"native,omitempty"`
	Tokens []TokenResponse `json:"tokens"`
	Count  int             `json:"count"`
}

func (s *httpServer) listTokens(w http.ResponseWriter, r *http.Request) {
	resp := TokensResponse{Native: s.nativeSymbol, Tokens: []TokenResponse{}}
	if s.tokens != nil {
		for _, d := range s.tokens.All() {
			resp.Tokens = append(resp.Tokens, TokenResponse{
				Symbol:         d.Symbol,
				Name:           d.Name,
				Address:        d.Address.Hex(),
				Decimals:       d.Decimals,
				Category:       string(d.Category),
				Priority:       d.Priority,
				WhaleThreshold: d.WhaleThreshold,
			})
		}
	}
	resp.Count = len(resp.Tokens)
	writeJSON(w, http.StatusOK, resp)
}

type NetworkStatusResponse struct {
	chain.NetworkStatus
	Error string `json:"error,omitempty"`
}

func (s *httpServer) networkStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.status.Status(r.Context())
	if err != nil {
		slog.Warn("network status unavailable", slog.Any("error", err))
		writeJSON(w, http.StatusServiceUnavailable, NetworkStatusResponse{
			NetworkStatus: status,
			Error:         err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, NetworkStatusResponse{NetworkStatus: status})
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", slog.Any("error", err))
	}
}

// withCORS allows any origin to read the api.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type HttpServerOption interface {
	Apply(*httpServer)
}

// WithNativeSymbol names the native asset in the token listing. Its events
// are filtered by the same symbol.
type WithNativeSymbol struct {
	Symbol string
}

func (o WithNativeSymbol) Apply(s *httpServer) {
	s.nativeSymbol = o.Symbol
}

// WithMetricsHandler exposes h on /metrics.
type WithMetricsHandler struct {
	Handler http.Handler
}

func (o WithMetricsHandler) Apply(s *httpServer) {
	s.metricsHandler = o.Handler
}
