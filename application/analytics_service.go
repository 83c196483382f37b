package application

import (
	"context"
	"sort"

	"qadash/domain/contracts"
	"qadash/domain/qa"
)

// DefectCount pairs a defect type with its occurrence count.
type DefectCount struct {
	DefectType string
	Count      int
}

// AnalyticsSummary is the aggregated view backing the analytics page.
type AnalyticsSummary struct {
	LotCounts     map[qa.LotStatus]int
	DefectCounts  []DefectCount
	TotalLots     int
	TotalDefects  int
	ActiveDevices int
}

// AnalyticsService aggregates lot and defect statistics for a client.
type AnalyticsService struct {
	lotRepo    contracts.LotRepository
	eventRepo  contracts.EventRepository
	deviceRepo contracts.DeviceRepository
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(lotRepo contracts.LotRepository, eventRepo contracts.EventRepository, deviceRepo contracts.DeviceRepository) *AnalyticsService {
	return &AnalyticsService{
		lotRepo:    lotRepo,
		eventRepo:  eventRepo,
		deviceRepo: deviceRepo,
	}
}

// Summary computes the analytics rollup for a client. Defect counts are
// ordered by count descending with ties broken alphabetically so the
// rendering is stable across refreshes.
func (s *AnalyticsService) Summary(ctx context.Context, clientID int64) (*AnalyticsSummary, error) {
	lotCounts, err := s.lotRepo.CountByStatus(ctx, clientID)
	if err != nil {
		return nil, err
	}

	defects, err := s.eventRepo.CountDefectsByType(ctx, clientID)
	if err != nil {
		return nil, err
	}

	devices, err := s.deviceRepo.ListDevices(ctx, clientID)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		LotCounts: lotCounts,
	}
	for _, n := range lotCounts {
		summary.TotalLots += n
	}

	summary.DefectCounts = make([]DefectCount, 0, len(defects))
	for defectType, count := range defects {
		summary.DefectCounts = append(summary.DefectCounts, DefectCount{DefectType: defectType, Count: count})
		summary.TotalDefects += count
	}
	sort.Slice(summary.DefectCounts, func(i, j int) bool {
		if summary.DefectCounts[i].Count != summary.DefectCounts[j].Count {
			return summary.DefectCounts[i].Count > summary.DefectCounts[j].Count
		}
		return summary.DefectCounts[i].DefectType < summary.DefectCounts[j].DefectType
	})

	for _, d := range devices {
		if d.Online {
			summary.ActiveDevices++
		}
	}
	return summary, nil
}
