package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/strata-rag/strata/internal/models"
	"github.com/strata-rag/strata/internal/orchestrator"
)

// QueryProcessor is the pipeline dependency, satisfied by
// orchestrator.Orchestrator.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, req *models.HybridRequest) (*models.HybridResponse, error)
}

type HybridHandler struct {
	processor QueryProcessor
	logger    *slog.Logger
}

func NewHybridHandler(processor QueryProcessor, logger *slog.Logger) *HybridHandler {
	return &HybridHandler{processor: processor, logger: logger}
}

// Process handles POST /v1/rag/hybrid. Validation failures are 400s; layer
// failures never surface here, a degraded response is still a 200.
func (h *HybridHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req models.HybridRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.processor.ProcessQuery(r.Context(), &req)
	if err != nil {
		var verr *orchestrator.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("unexpected orchestrator failure", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
