package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// sequenceHandler exposes administrative sequence operations.
type sequenceHandler struct {
	sequenceService portssvc.SequenceSvcFacade
}

// newSequenceHandler creates a new sequenceHandler.
func newSequenceHandler(sequenceService portssvc.SequenceSvcFacade) *sequenceHandler {
	return &sequenceHandler{
		sequenceService: sequenceService,
	}
}

// reserveBlock godoc
// @Summary Reserve a block of sequence numbers
// @Description Reserves a contiguous range under a scope key for an external consumer such as a batch import
// @Tags sequences
// @Accept  json
// @Produce  json
// @Param   block body dto.ReserveSequenceRequest true "Scope and count"
// @Success 200 {object} dto.SequenceRangeResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /sequences/reserve [post]
func (h *sequenceHandler) reserveBlock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReserveSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reserveBlock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	rng, err := h.sequenceService.ReserveBlock(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to reserve sequence block")
		return
	}

	c.JSON(http.StatusOK, dto.SequenceRangeResponse{
		ScopeKey: req.ScopeKey,
		First:    rng.First,
		Last:     rng.Last,
	})
}

// getCounter godoc
// @Summary Get the current counter state for a scope
// @Tags sequences
// @Produce  json
// @Param   scopeKey path string true "Scope key"
// @Success 200 {object} domain.Counter
// @Failure 404 {object} map[string]string "Counter not found"
// @Router /sequences/{scopeKey} [get]
func (h *sequenceHandler) getCounter(c *gin.Context) {
	scopeKey := c.Param("scopeKey")

	counter, err := h.sequenceService.GetCounter(c.Request.Context(), scopeKey)
	if err != nil {
		respondError(c, err, "Failed to retrieve counter")
		return
	}

	c.JSON(http.StatusOK, counter)
}
