package repository

import (
	"github.com/diillson/aws-cost-explorer-go/internal/domain/entity"
)

// ExportRepository defines the interface for exporting the cost report to files.
type ExportRepository interface {
	ExportToCSV(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error)
	ExportToJSON(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error)
	ExportToPDF(report entity.Report, accountID, filename, outputDir, periodDates string) (string, error)
}
