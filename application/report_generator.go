package application

import (
	"context"
	"fmt"
	"io"
	"sync"

	"qadash/domain/reports"
)

// ReportGenerator produces the artifact content for one report type.
type ReportGenerator interface {
	// Generate writes the artifact for the report to out.
	Generate(ctx context.Context, report *reports.Report, out io.Writer) error
}

// ReportGeneratorRegistry maps report types to their generators.
type ReportGeneratorRegistry struct {
	mu         sync.RWMutex
	generators map[reports.ReportType]ReportGenerator
}

// NewReportGeneratorRegistry creates an empty registry.
func NewReportGeneratorRegistry() *ReportGeneratorRegistry {
	return &ReportGeneratorRegistry{
		generators: make(map[reports.ReportType]ReportGenerator),
	}
}

// RegisterGenerator registers a generator for a report type, replacing any
// previous registration.
func (r *ReportGeneratorRegistry) RegisterGenerator(reportType reports.ReportType, generator ReportGenerator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[reportType] = generator
}

// GetGenerator returns the generator for a report type.
func (r *ReportGeneratorRegistry) GetGenerator(reportType reports.ReportType) (ReportGenerator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	generator, ok := r.generators[reportType]
	if !ok {
		return nil, fmt.Errorf("no generator registered for report type %q", reportType)
	}
	return generator, nil
}

// RegisteredTypes returns the known report types.
func (r *ReportGeneratorRegistry) RegisteredTypes() []reports.ReportType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]reports.ReportType, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	return types
}
