package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
	"github.com/finbooks/erp_ledger_app/internal/utils/numbering"
)

// voucherService provides payment voucher creation and status transitions.
type voucherService struct {
	voucherRepo portsrepo.VoucherRepositoryFacade
	auditRepo   portsrepo.AuditLogRepository
	sequenceSvc portssvc.SequenceAllocatorSvc
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, sequenceSvc portssvc.SequenceAllocatorSvc, auditRepo portsrepo.AuditLogRepository) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo: voucherRepo,
		auditRepo:   auditRepo,
		sequenceSvc: sequenceSvc,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// CreateVoucher numbers and persists a new voucher in Draft.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: voucher amount must be positive", apperrors.ErrValidation)
	}

	rng, err := s.sequenceSvc.Allocate(ctx, numbering.ScopeVoucher, 1)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	voucher := domain.Voucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: numbering.VoucherNumber(rng.First),
		SequenceNo:    rng.First,
		PartyID:       req.PartyID,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		VoucherDate:   req.Date,
		Description:   req.Description,
		Status:        domain.VoucherDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher); err != nil {
		logger.Error("Failed to save voucher, releasing sequence number",
			slog.String("voucher_number", voucher.VoucherNumber),
			slog.String("error", err.Error()),
		)
		if relErr := s.sequenceSvc.Release(ctx, numbering.ScopeVoucher, 1); relErr != nil {
			logger.Warn("Sequence release after failed save did not succeed",
				slog.String("scope_key", numbering.ScopeVoucher),
				slog.String("error", relErr.Error()),
			)
		}
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Voucher created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucher.VoucherNumber),
	)
	writeAudit(ctx, s.auditRepo, actor, "voucher", "create", voucher.VoucherID, map[string]any{
		"voucherNumber": voucher.VoucherNumber,
		"amount":        voucher.Amount.String(),
	})

	return &voucher, nil
}

// GetVoucherByID retrieves a voucher by its ID.
func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	return voucher, nil
}

// ListVouchers retrieves a paginated list of vouchers.
func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	limit := normalizeLimit(params.Limit)

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	resp := &dto.ListVouchersResponse{NextToken: nextToken}
	for i := range vouchers {
		resp.Vouchers = append(resp.Vouchers, dto.ToVoucherResponse(&vouchers[i]))
	}
	return resp, nil
}

// UpdateVoucherStatus applies a one-step status transition.
func (s *voucherService) UpdateVoucherStatus(ctx context.Context, voucherID string, target domain.VoucherStatus, actor domain.Actor) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	if err := guardTransition(domain.VoucherTransitions(), "voucher", voucher.Status, target, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, target, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to update voucher %s status: %w", voucherID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Voucher status changed",
		slog.String("voucher_id", voucherID),
		slog.String("from", string(voucher.Status)),
		slog.String("to", string(target)),
	)
	writeAudit(ctx, s.auditRepo, actor, "voucher", "status-change", voucherID, map[string]any{
		"from": string(voucher.Status),
		"to":   string(target),
	})

	voucher.Status = target
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actor.UserID
	return voucher, nil
}
