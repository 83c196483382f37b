package mocks

import (
	"github.com/stretchr/testify/mock"

	"qadash/domain/events"
)

// MockReportEventPublisher is a mock implementation of ReportEventPublisher for testing
type MockReportEventPublisher struct {
	mock.Mock
}

func (m *MockReportEventPublisher) PublishReportCompleted(event events.ReportCompletedEvent) {
	m.Called(event)
}

func (m *MockReportEventPublisher) PublishReportFailed(event events.ReportFailedEvent) {
	m.Called(event)
}

func (m *MockReportEventPublisher) PublishLotStatusChanged(event events.LotStatusChangedEvent) {
	m.Called(event)
}
