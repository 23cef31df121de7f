package repository

import (
	"context"
	"time"

	"github.com/diillson/aws-cost-explorer-go/internal/domain/entity"
)

// CostRepository defines the interface for AWS API interactions.
type CostRepository interface {
	// Profile Operations
	GetAWSProfiles() []string
	GetAccountID(ctx context.Context, profile string) (string, error)

	// Cost Operations
	GetCostRecords(ctx context.Context, profile string, start, end time.Time, tags []string) ([]entity.CostRecord, error)
}
