package application

import (
	"context"
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// StockService applies bounded stock mutations and writes the audit
// trail. Permission checks belong to the caller; this service assumes
// the actor was already authorized.
type StockService struct {
	dots   ports.TireDotRepository
	logs   ports.StockLogRepository
	logger zerolog.Logger
}

// NewStockService creates a new stock mutation service.
func NewStockService(
	dots ports.TireDotRepository,
	logs ports.StockLogRepository,
	logger zerolog.Logger,
) *StockService {
	return &StockService{
		dots:   dots,
		logs:   logs,
		logger: logger,
	}
}

// PreviewAdjust re-reads the live quantity of a lot and computes what a
// delta would do to it, for the confirmation card. The quantity shown
// in a stale search result must never be trusted here.
func (s *StockService) PreviewAdjust(ctx context.Context, dotID string, delta int) (*domain.AdjustmentPreview, error) {
	dot, err := s.dots.GetByID(ctx, dotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock lot: %w", err)
	}
	if dot == nil {
		return nil, domain.ErrNotFound
	}

	after := domain.ClampQuantity(dot.Quantity, delta)
	return &domain.AdjustmentPreview{
		DotID:  dotID,
		Before: dot.Quantity,
		After:  after,
		Change: after - dot.Quantity,
	}, nil
}

// Adjust commits a clamped delta to a lot and appends one audit row.
// The quantity write decides success; a failed audit insert is logged
// server-side only, since the stock change already happened and must
// not be rolled back because the log failed.
func (s *StockService) Adjust(ctx context.Context, dotID string, delta int, lineUserID string) (*domain.StockAdjustment, error) {
	before, after, err := s.dots.AdjustQuantity(ctx, dotID, delta)
	if err != nil {
		return nil, err
	}

	action := domain.StockActionAdd
	if delta < 0 {
		action = domain.StockActionRemove
	}

	entry := &domain.StockLog{
		TireDotID:      dotID,
		Action:         action,
		QuantityBefore: before,
		QuantityAfter:  after,
		QuantityChange: after - before,
		Notes:          fmt.Sprintf("LINE bot adjustment by %s", lineUserID),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Error().
			Err(err).
			Str("dotId", dotID).
			Int("before", before).
			Int("after", after).
			Msg("Failed to write stock log for committed mutation")
	}

	return &domain.StockAdjustment{
		DotID:  dotID,
		Before: before,
		After:  after,
		Change: after - before,
	}, nil
}
