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

// voucherHandler handles HTTP requests related to payment vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(voucherService portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{
		voucherService: voucherService,
	}
}

// createVoucher godoc
// @Summary Create a payment voucher
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateVoucherRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), createReq, actor)
	if err != nil {
		respondError(c, err, "Failed to create voucher")
		return
	}

	logger.Info("Voucher created successfully", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a payment voucher
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	voucherID := c.Param("voucherID")

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), voucherID)
	if err != nil {
		respondError(c, err, "Failed to retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List payment vouchers
// @Tags vouchers
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListVouchersResponse
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list vouchers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateVoucherStatus godoc
// @Summary Apply a one-step voucher status transition
// @Description AnyMode requires an elevated actor
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   status body dto.UpdateVoucherStatusRequest true "Target status"
// @Success 200 {object} dto.VoucherResponse
// @Failure 403 {object} map[string]string "Elevation required"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /vouchers/{voucherID}/status [put]
func (h *voucherHandler) updateVoucherStatus(c *gin.Context) {
	voucherID := c.Param("voucherID")

	var req dto.UpdateVoucherStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := requestActor(c)

	voucher, err := h.voucherService.UpdateVoucherStatus(c.Request.Context(), voucherID, domain.VoucherStatus(req.Status), actor)
	if err != nil {
		respondError(c, err, "Failed to update voucher status")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}
