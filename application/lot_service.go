package application

import (
	"context"
	"fmt"
	"time"

	"qadash/domain/contracts"
	"qadash/domain/events"
	"qadash/domain/qa"
	"qadash/logging"
)

// LotService provides lot listing, filtering and approval operations.
type LotService struct {
	lotRepo  contracts.LotRepository
	eventBus events.ReportEventPublisher
	logger   *logging.Logger
}

// NewLotService creates a lot service.
func NewLotService(lotRepo contracts.LotRepository, eventBus events.ReportEventPublisher) *LotService {
	return &LotService{
		lotRepo:  lotRepo,
		eventBus: eventBus,
		logger:   logging.Default().WithComponent("lot_service"),
	}
}

// ListLots retrieves lots honoring the filter. An unknown status string is
// treated as no constraint rather than an error.
func (s *LotService) ListLots(ctx context.Context, clientID int64, status, search string) ([]*qa.Lot, error) {
	filter := contracts.LotFilter{Search: search}
	if qa.IsValidLotStatus(status) {
		filter.Status = qa.LotStatus(status)
	}
	return s.lotRepo.List(ctx, clientID, filter)
}

// GetLot retrieves a single lot, enforcing tenant scope.
func (s *LotService) GetLot(ctx context.Context, clientID, lotID int64) (*qa.Lot, error) {
	return s.lotRepo.GetByID(ctx, clientID, lotID)
}

// ApproveLot transitions an awaiting lot to approved and publishes the change.
func (s *LotService) ApproveLot(ctx context.Context, clientID, lotID int64) error {
	lot, err := s.lotRepo.GetByID(ctx, clientID, lotID)
	if err != nil {
		return err
	}
	if lot.Status != qa.LotStatusAwaitingApproval {
		return fmt.Errorf("lot %d is %s, only awaiting_approval lots can be approved", lotID, lot.Status)
	}

	if err := s.lotRepo.UpdateStatus(ctx, clientID, lotID, qa.LotStatusApproved); err != nil {
		return err
	}

	s.logger.Info("Lot approved", "lot_id", lotID, "client_id", clientID)
	s.eventBus.PublishLotStatusChanged(events.LotStatusChangedEvent{
		ClientID:  clientID,
		LotID:     lotID,
		Status:    string(qa.LotStatusApproved),
		Timestamp: time.Now(),
	})
	return nil
}

// CountByStatus returns lot counts keyed by status.
func (s *LotService) CountByStatus(ctx context.Context, clientID int64) (map[qa.LotStatus]int, error) {
	return s.lotRepo.CountByStatus(ctx, clientID)
}
