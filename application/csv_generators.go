package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"qadash/domain/contracts"
	"qadash/domain/reports"
)

// LotSummaryGenerator exports every lot of the tenant as CSV.
type LotSummaryGenerator struct {
	lotRepo contracts.LotRepository
}

// NewLotSummaryGenerator creates a lot summary generator.
func NewLotSummaryGenerator(lotRepo contracts.LotRepository) *LotSummaryGenerator {
	return &LotSummaryGenerator{lotRepo: lotRepo}
}

// Generate writes the artifact for the report to out.
func (g *LotSummaryGenerator) Generate(ctx context.Context, report *reports.Report, out io.Writer) error {
	lots, err := g.lotRepo.List(ctx, report.ClientID, contracts.LotFilter{})
	if err != nil {
		return fmt.Errorf("failed to load lots: %w", err)
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"lot_id", "style_ref", "factory", "status", "garments_total", "garments_done", "defect_count", "defect_rate"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, lot := range lots {
		record := []string{
			strconv.FormatInt(lot.ID, 10),
			lot.StyleRef,
			lot.Factory,
			string(lot.Status),
			strconv.Itoa(lot.GarmentsTotal),
			strconv.Itoa(lot.GarmentsDone),
			strconv.Itoa(lot.DefectCount),
			strconv.FormatFloat(lot.DefectRate(), 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write lot row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// DefectAnalysisGenerator exports defect counts grouped by defect type.
type DefectAnalysisGenerator struct {
	eventRepo contracts.EventRepository
}

// NewDefectAnalysisGenerator creates a defect analysis generator.
func NewDefectAnalysisGenerator(eventRepo contracts.EventRepository) *DefectAnalysisGenerator {
	return &DefectAnalysisGenerator{eventRepo: eventRepo}
}

// Generate writes the artifact for the report to out.
func (g *DefectAnalysisGenerator) Generate(ctx context.Context, report *reports.Report, out io.Writer) error {
	counts, err := g.eventRepo.CountDefectsByType(ctx, report.ClientID)
	if err != nil {
		return fmt.Errorf("failed to aggregate defects: %w", err)
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"defect_type", "count"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for defectType, count := range counts {
		if err := w.Write([]string{defectType, strconv.Itoa(count)}); err != nil {
			return fmt.Errorf("failed to write defect row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
