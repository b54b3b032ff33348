// Package server exposes the evaluator over a small authenticated HTTP API.
// It returns the ordered numeric series for the UI collaborator to render;
// no charts or pages are produced here.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eci-capital/condo-evaluator/internal/config"
	"github.com/eci-capital/condo-evaluator/internal/evaluator"
	"github.com/eci-capital/condo-evaluator/internal/pricefeed"
	"github.com/eci-capital/condo-evaluator/pkg/constants"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	auth        *Authenticator
	prices      pricefeed.Source
	assumptions evaluator.Assumptions
	maxBody     int64
	version     string
}

// NewHandler constructs the HTTP handler serving the evaluation API.
func NewHandler(logger *zap.Logger, cfg config.ServerConfig, assumptions evaluator.Assumptions, prices pricefeed.Source, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		auth:        NewAuthenticator(cfg.PasswordHash, cfg.TokenSecret, cfg.SessionTTL()),
		prices:      prices,
		assumptions: assumptions,
		maxBody:     constants.DefaultMaxRequestBytes,
		version:     trimmedVersion,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/login", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(h.auth.Middleware)
	authed.HandleFunc("/price", h.handlePrice).Methods(http.MethodGet)
	authed.HandleFunc("/evaluate", h.handleEvaluate).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		h.respondError(w, http.StatusServiceUnavailable, "login is not configured")
		return
	}

	var req loginRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		return
	}

	if !h.auth.CheckPassword(req.Password) {
		h.respondError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	token, err := h.auth.IssueToken()
	if err != nil {
		h.logger.Error("failed to sign session token",
			zap.String("op", "server.handleLogin"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type priceResponse struct {
	Price float64 `json:"price"`
}

func (h *handler) handlePrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.prices.CurrentPrice(r.Context())
	if err != nil {
		h.logger.Warn("price lookup failed",
			zap.String("op", "server.handlePrice"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusBadGateway, "BTC price unavailable, please retry")
		return
	}
	h.writeJSON(w, http.StatusOK, priceResponse{Price: price})
}

type evaluateRequest struct {
	BTCAmount  float64 `json:"btcAmount"`
	CondoPrice float64 `json:"condoPrice"`
	// BTCPrice, when positive, overrides the live price feed to evaluate a
	// hypothetical deal.
	BTCPrice float64 `json:"btcPrice,omitempty"`
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		return
	}

	price := req.BTCPrice
	if price <= 0 {
		fetched, err := h.prices.CurrentPrice(r.Context())
		if err != nil {
			h.logger.Warn("price lookup failed",
				zap.String("op", "server.handleEvaluate"),
				zap.Error(err),
			)
			h.respondError(w, http.StatusBadGateway, "BTC price unavailable, please retry")
			return
		}
		price = fetched
	}

	result, err := evaluator.Evaluate(evaluator.Inputs{
		BTCAmount:    req.BTCAmount,
		BTCUnitPrice: price,
		CondoPrice:   req.CondoPrice,
	}, h.assumptions)
	if err != nil {
		switch {
		case errors.Is(err, evaluator.ErrPriceUnavailable):
			h.respondError(w, http.StatusBadGateway, "BTC price unavailable, please retry")
		case errors.Is(err, evaluator.ErrInvalidInput):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("evaluation failed",
				zap.String("op", "server.handleEvaluate"),
				zap.Error(err),
			)
			h.respondError(w, http.StatusInternalServerError, "evaluation failed")
		}
		return
	}

	// A rejected deal is a successful evaluation carrying the constraint
	// figures, not an error.
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body")
		return err
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
