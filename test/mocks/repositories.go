package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"qadash/domain/contracts"
	"qadash/domain/events"
	"qadash/domain/qa"
	"qadash/domain/reports"
)

// MockClientRepository implements ClientRepository for testing
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) GetByID(ctx context.Context, clientID int64) (*qa.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qa.Client), args.Error(1)
}

func (m *MockClientRepository) GetBySlug(ctx context.Context, slug string) (*qa.Client, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qa.Client), args.Error(1)
}

func (m *MockClientRepository) ListAll(ctx context.Context) ([]*qa.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*qa.Client), args.Error(1)
}

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*qa.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qa.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*qa.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qa.User), args.Error(1)
}

// MockLotRepository implements LotRepository for testing
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) GetByID(ctx context.Context, clientID, lotID int64) (*qa.Lot, error) {
	args := m.Called(ctx, clientID, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qa.Lot), args.Error(1)
}

func (m *MockLotRepository) List(ctx context.Context, clientID int64, filter contracts.LotFilter) ([]*qa.Lot, error) {
	args := m.Called(ctx, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*qa.Lot), args.Error(1)
}

func (m *MockLotRepository) UpdateStatus(ctx context.Context, clientID, lotID int64, status qa.LotStatus) error {
	args := m.Called(ctx, clientID, lotID, status)
	return args.Error(0)
}

func (m *MockLotRepository) CountByStatus(ctx context.Context, clientID int64) (map[qa.LotStatus]int, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[qa.LotStatus]int), args.Error(1)
}

// MockDeviceRepository implements DeviceRepository for testing
type MockDeviceRepository struct {
	mock.Mock
}

func (m *MockDeviceRepository) ListDevices(ctx context.Context, clientID int64) ([]*qa.Device, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*qa.Device), args.Error(1)
}

func (m *MockDeviceRepository) GetActiveOperator(ctx context.Context, deviceID int64) (*qa.Operator, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qa.Operator), args.Error(1)
}

func (m *MockDeviceRepository) ListDeviceCards(ctx context.Context, clientID int64) ([]*qa.DeviceCard, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*qa.DeviceCard), args.Error(1)
}

// MockEventRepository implements EventRepository for testing
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) ListRecent(ctx context.Context, clientID int64, limit int) ([]*events.RawFeedEvent, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*events.RawFeedEvent), args.Error(1)
}

func (m *MockEventRepository) Append(ctx context.Context, event *events.RawFeedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) CountDefectsByType(ctx context.Context, clientID int64) (map[string]int, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockReportRepository implements ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) GetByID(ctx context.Context, clientID int64, reportID string) (*reports.Report, error) {
	args := m.Called(ctx, clientID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.Report), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, clientID int64) ([]*reports.Report, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reports.Report), args.Error(1)
}

func (m *MockReportRepository) Create(ctx context.Context, report *reports.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) Update(ctx context.Context, report *reports.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
