package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/history"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/rates"
	"github.com/iwvelando/finance-calculators/pkg/sanitize"
	"github.com/iwvelando/finance-calculators/pkg/tiers"
)

// Options carries the collaborators the HTTP API serves from. History and
// Metrics may be nil.
type Options struct {
	Calculator  *calculator.Calculator
	History     history.Store
	Metrics     *metrics.Recorder
	Sliders     map[string]tiers.Config
	MaxBodySize int64
	Version     string
}

type handler struct {
	logger      *zap.Logger
	calc        *calculator.Calculator
	store       history.Store
	metrics     *metrics.Recorder
	sliders     map[string]tiers.Config
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, opts Options) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Calculator == nil {
		return nil, errors.New("server requires a calculator")
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	sliders := opts.Sliders
	if len(sliders) == 0 {
		sliders = tiers.DefaultConfigs()
	}

	h := &handler{
		logger:      logger,
		calc:        opts.Calculator,
		store:       opts.History,
		metrics:     opts.Metrics,
		sliders:     sliders,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()
	h.route(mux, "POST /api/calculate", h.handleCalculate)
	h.route(mux, "GET /api/slider", h.handleSlider)
	h.route(mux, "GET /api/rates/deposits", h.handleDepositRates)
	h.route(mux, "GET /api/rates/schemes", h.handleSchemes)
	h.route(mux, "POST /api/history", h.handleSave)
	h.route(mux, "GET /api/history", h.handleList)
	h.route(mux, "GET /api/history/{id}", h.handleGet)
	h.route(mux, "GET /api/history/{id}/result", h.handleRecompute)
	h.route(mux, "DELETE /api/history/{id}", h.handleDelete)
	h.route(mux, "GET /api/version", h.handleVersion)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}
	return mux, nil
}

// route registers fn and counts every response it writes under pattern.
func (h *handler) route(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(recorder, r)
		h.metrics.ObserveAPICall(pattern, strconv.Itoa(recorder.status))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

type saveRequest struct {
	Name       string                `json:"name"`
	Parameters calculator.Parameters `json:"parameters"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	var params calculator.Parameters
	if !h.decodeBody(w, r, &params, op) {
		return
	}

	start := time.Now()
	result, err := h.calc.Calculate(r.Context(), params)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if r.URL.Query().Get("format") == constants.OutputFormatCSV {
		w.Header().Set("Content-Type", "text/csv")
		if err := output.CsvFormat(w, result); err != nil {
			h.logger.Error("failed to write CSV response", zap.String("op", op), zap.Error(err))
		}
		return
	}

	h.logger.Debug("calculation served",
		zap.String("op", op),
		zap.String("kind", string(result.Kind)),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleSlider(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSlider"
	query := r.URL.Query()

	input := query.Get("input")
	cfg, ok := h.sliders[input]
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("unknown slider %q", input), op)
		return
	}

	response := output.SliderReading{Input: input}
	switch {
	case query.Has("position"):
		position, err := strconv.ParseFloat(query.Get("position"), 64)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid position: %v", err), op)
			return
		}
		response.Amount = tiers.PositionToAmount(position, cfg)
		response.Position = tiers.AmountToPosition(response.Amount, cfg)
	case query.Has("amount"):
		response.Amount = sanitize.Amount(query.Get("amount"), 0, 0)
		response.Position = tiers.AmountToPosition(response.Amount, cfg)
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest, "expected a position or an amount", op)
		return
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleDepositRates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := rates.BankFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
		MinRate:  sanitize.Rate(query.Get("minRate"), 0, 0),
		Senior:   coerceBool(query.Get("senior")),
	}
	h.writeJSON(w, http.StatusOK, h.calc.Catalog().SelectBanks(filter))
}

func (h *handler) handleSchemes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := rates.SchemeFilter{
		Category:       query.Get("category"),
		MaxLockInYears: sanitize.Rate(query.Get("maxLockIn"), 0, 0),
	}
	h.writeJSON(w, http.StatusOK, h.calc.Catalog().SelectSchemes(filter))
}

func (h *handler) handleSave(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSave"
	if !h.requireHistory(w, op) {
		return
	}

	var request saveRequest
	if !h.decodeBody(w, r, &request, op) {
		return
	}

	result, err := h.calc.Calculate(r.Context(), request.Parameters)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if result.Empty() {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, "nothing to save for the given input", op)
		return
	}

	record, err := h.store.Save(r.Context(), history.NewRecord(request.Name, result))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to save calculation: %v", err), op)
		return
	}

	h.logger.Info("calculation saved",
		zap.String("op", op),
		zap.String("id", record.ID.String()),
		zap.String("kind", string(record.Kind)),
	)
	h.writeJSON(w, http.StatusCreated, record)
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleList"
	if !h.requireHistory(w, op) {
		return
	}

	var kind calculator.Kind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, err := calculator.ParseKind(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		kind = parsed
	}

	records, err := h.store.List(r.Context(), kind)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list calculations: %v", err), op)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *handler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGet"
	record, ok := h.lookup(w, r, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

func (h *handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRecompute"
	record, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	result, err := h.calc.Recompute(r.Context(), record)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDelete"
	if !h.requireHistory(w, op) {
		return
	}
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request, op string) (history.Record, bool) {
	if !h.requireHistory(w, op) {
		return history.Record{}, false
	}
	id, ok := h.pathID(w, r, op)
	if !ok {
		return history.Record{}, false
	}

	record, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, op)
		return history.Record{}, false
	}
	return record, true
}

func (h *handler) pathID(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid calculation id: %v", err), op)
		return uuid.Nil, false
	}
	return id, true
}

func (h *handler) requireHistory(w http.ResponseWriter, op string) bool {
	if h.store == nil {
		h.respondErrorWithOp(w, http.StatusNotImplemented, "history is not enabled", op)
		return false
	}
	return true
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, target any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, history.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}

// Run serves handler on cfg.Address with the configured engine until ctx is
// cancelled, then shuts the listener down gracefully.
func Run(ctx context.Context, cfg Config, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := newListener(cfg, handler)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
			zap.String("engine", cfg.Engine),
		)
		serverErr <- srv.serve()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("server stopped", zap.String("op", "server.Run"))
	return nil
}
