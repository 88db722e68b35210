package report

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// ReportService builds downloadable exports of attendance data.
type ReportService interface {
	// ExportCSV renders every record matching the filter as a CSV file.
	// The filter's pagination fields are ignored; exports are whole.
	ExportCSV(ctx context.Context, filter attendance.ListFilter) (ExportResult, error)
}
