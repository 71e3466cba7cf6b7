package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// createJournal godoc
// @Summary Create a journal with its ledger lines
// @Description Validates, numbers and persists a new journal in DRAFT
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal and lines"
// @Success 201 {object} dto.JournalResponse "The created journal"
// @Failure 400 {object} map[string]string "Invalid request or line validation failure"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateJournalRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	journal, err := h.journalService.CreateJournal(c.Request.Context(), createReq, actor)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal with its lines, workflow and history
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Paginated journal list, newest first, with continuation token
// @Tags journals
// @Produce  json
// @Param   companyCode query string false "Company code filter (empty = global journals)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListJournalsResponse
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateJournalStatus godoc
// @Summary Apply a one-step journal status transition
// @Description Moves the journal one step along its status whitelist; ADMIN_MODE requires an elevated actor
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   status body dto.UpdateJournalStatusRequest true "Target status"
// @Success 200 {object} dto.JournalResponse
// @Failure 403 {object} map[string]string "Elevation required"
// @Failure 409 {object} map[string]string "Transition not allowed from current status"
// @Router /journals/{journalID}/status [put]
func (h *journalHandler) updateJournalStatus(c *gin.Context) {
	journalID := c.Param("journalID")

	var req dto.UpdateJournalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	journal, err := h.journalService.UpdateJournalStatus(c.Request.Context(), journalID, domain.JournalStatus(req.Status), actor)
	if err != nil {
		respondError(c, err, "Failed to update journal status")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates and posts a mirror journal and marks the original REVERSED
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 201 {object} dto.JournalResponse "The reversing journal"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal not posted or already reversed"
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	journalID := c.Param("journalID")

	actor := requestActor(c)

	reversing, err := h.journalService.ReverseJournal(c.Request.Context(), journalID, actor)
	if err != nil {
		respondError(c, err, "Failed to reverse journal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversing))
}

// submitForApproval godoc
// @Summary Submit a journal for approval
// @Description Attaches an ordered approval chain and moves the journal to SUBMITTED
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   workflow body dto.SubmitForApprovalRequest true "Ordered assignees"
// @Success 200 {object} dto.JournalResponse
// @Failure 409 {object} map[string]string "Journal not in a submittable status"
// @Router /journals/{journalID}/submit [post]
func (h *journalHandler) submitForApproval(c *gin.Context) {
	journalID := c.Param("journalID")

	var req dto.SubmitForApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	journal, err := h.journalService.SubmitForApproval(c.Request.Context(), journalID, req.Assignees, actor)
	if err != nil {
		respondError(c, err, "Failed to submit journal for approval")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// recordApprovalDecision godoc
// @Summary Record a decision on the journal's current approval step
// @Description Accepts APPROVED, REJECTED or CHANGES_REQUESTED from the step assignee; the final approval posts the journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   decision body dto.ApprovalDecisionRequest true "Decision"
// @Success 200 {object} dto.JournalResponse
// @Failure 403 {object} map[string]string "Actor is not the assignee"
// @Failure 409 {object} map[string]string "Step out of order or already decided"
// @Router /journals/{journalID}/decision [post]
func (h *journalHandler) recordApprovalDecision(c *gin.Context) {
	journalID := c.Param("journalID")

	var req dto.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	journal, err := h.journalService.RecordApprovalDecision(c.Request.Context(), journalID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to record approval decision")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
