package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qadash/domain/contracts"
	"qadash/domain/events"
	"qadash/domain/qa"
	"qadash/test/mocks"
)

func TestLotService_ListLots_UnknownStatusMeansNoConstraint(t *testing.T) {
	lotRepo := &mocks.MockLotRepository{}
	lotRepo.On("List", mock.Anything, int64(7), contracts.LotFilter{Search: "denim"}).
		Return([]*qa.Lot{}, nil)
	service := NewLotService(lotRepo, &mocks.MockReportEventPublisher{})

	_, err := service.ListLots(context.Background(), 7, "bogus_status", "denim")

	require.NoError(t, err)
	lotRepo.AssertExpectations(t)
}

func TestLotService_ListLots_ValidStatusApplied(t *testing.T) {
	lotRepo := &mocks.MockLotRepository{}
	lotRepo.On("List", mock.Anything, int64(7),
		contracts.LotFilter{Status: qa.LotStatusAwaitingApproval}).
		Return([]*qa.Lot{{ID: 1, Status: qa.LotStatusAwaitingApproval}}, nil)
	service := NewLotService(lotRepo, &mocks.MockReportEventPublisher{})

	lots, err := service.ListLots(context.Background(), 7, "awaiting_approval", "")

	require.NoError(t, err)
	require.Len(t, lots, 1)
	lotRepo.AssertExpectations(t)
}

func TestLotService_ApproveLot_PublishesStatusChange(t *testing.T) {
	lotRepo := &mocks.MockLotRepository{}
	lotRepo.On("GetByID", mock.Anything, int64(7), int64(31)).
		Return(&qa.Lot{ID: 31, ClientID: 7, Status: qa.LotStatusAwaitingApproval}, nil)
	lotRepo.On("UpdateStatus", mock.Anything, int64(7), int64(31), qa.LotStatusApproved).
		Return(nil)
	publisher := &mocks.MockReportEventPublisher{}
	publisher.On("PublishLotStatusChanged", mock.MatchedBy(func(e events.LotStatusChangedEvent) bool {
		return e.ClientID == 7 && e.LotID == 31 && e.Status == "approved"
	})).Return()
	service := NewLotService(lotRepo, publisher)

	err := service.ApproveLot(context.Background(), 7, 31)

	require.NoError(t, err)
	lotRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestLotService_ApproveLot_RejectsWrongState(t *testing.T) {
	lotRepo := &mocks.MockLotRepository{}
	lotRepo.On("GetByID", mock.Anything, int64(7), int64(31)).
		Return(&qa.Lot{ID: 31, ClientID: 7, Status: qa.LotStatusInspection}, nil)
	publisher := &mocks.MockReportEventPublisher{}
	service := NewLotService(lotRepo, publisher)

	err := service.ApproveLot(context.Background(), 7, 31)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "only awaiting_approval")
	lotRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishLotStatusChanged", mock.Anything)
}

func TestLotService_ApproveLot_NotFound(t *testing.T) {
	lotRepo := &mocks.MockLotRepository{}
	lotRepo.On("GetByID", mock.Anything, int64(7), int64(99)).
		Return(nil, contracts.ErrNotFound)
	service := NewLotService(lotRepo, &mocks.MockReportEventPublisher{})

	err := service.ApproveLot(context.Background(), 7, 99)

	assert.ErrorIs(t, err, contracts.ErrNotFound)
}
