// Package model exposes the compute engine over HTTP. Runs are kept in an
// in-memory registry keyed by run ID; persistence is deliberately out of
// scope, callers that need durable results store the JSON themselves.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	coremodel "project_finance/pkg/core/model"
	"project_finance/pkg/core/report"
	"project_finance/pkg/core/scenario"
)

// Run is one computed model run held in the registry.
type Run struct {
	ID        string               `json:"run_id"`
	CreatedAt time.Time            `json:"created_at"`
	Params    coremodel.Parameters `json:"parameters"`
	Results   *coremodel.Results   `json:"results"`
}

// Handler serves the model endpoints and owns the run registry.
type Handler struct {
	mu   sync.Mutex
	runs map[string]*Run
}

func NewHandler() *Handler {
	return &Handler{runs: make(map[string]*Run)}
}

// RunResponse is the payload returned by HandleRun.
type RunResponse struct {
	RunID   string             `json:"run_id"`
	Results *coremodel.Results `json:"results"`
}

// HandleRun computes a model from a scenario-shaped JSON body and
// registers the results under a fresh run ID.
// POST /api/model/run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scenario.Params
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.Parameters()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := coremodel.Compute(params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, coremodel.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	run := &Run{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Params:    params,
		Results:   results,
	}
	h.mu.Lock()
	h.runs[run.ID] = run
	h.mu.Unlock()

	fmt.Printf("[MODEL] Run %s: debt $%s / equity $%s (%s bound)\n",
		run.ID, report.Money(results.Sizing.DebtAmount), report.Money(results.Sizing.EquityAmount),
		results.Sizing.BindingConstraint)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RunResponse{RunID: run.ID, Results: results})
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	RunID        string    `json:"run_id"`
	CreatedAt    time.Time `json:"created_at"`
	CapexTotal   float64   `json:"capex_total"`
	DebtAmount   float64   `json:"debt_amount"`
	EquityAmount float64   `json:"equity_amount"`
	EquityIRR    *float64  `json:"equity_irr"`
}

// HandleRuns lists registered runs, newest first.
// GET /api/model/runs
func (h *Handler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	h.mu.Lock()
	summaries := make([]RunSummary, 0, len(h.runs))
	for _, run := range h.runs {
		summaries = append(summaries, RunSummary{
			RunID:        run.ID,
			CreatedAt:    run.CreatedAt,
			CapexTotal:   run.Params.CapexTotal,
			DebtAmount:   run.Results.Sizing.DebtAmount,
			EquityAmount: run.Results.Sizing.EquityAmount,
			EquityIRR:    run.Results.Equity.IRR,
		})
	}
	h.mu.Unlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// HandleReport renders a registered run as markdown or HTML.
// GET /api/model/report?run=<id>&format=markdown|html
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := r.URL.Query().Get("run")
	h.mu.Lock()
	run, ok := h.runs[id]
	h.mu.Unlock()
	if !ok {
		http.Error(w, fmt.Sprintf("run not found: %s", id), http.StatusNotFound)
		return
	}

	switch r.URL.Query().Get("format") {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, report.Markdown(run.Params, run.Results))
	default:
		html, err := report.HTML(run.Params, run.Results)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
