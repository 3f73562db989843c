package repository

import (
	"context"

	"github.com/diillson/aws-which-region/internal/domain/entity"
	"github.com/diillson/aws-which-region/internal/shared/types"
)

// AWSConnector opens an authenticated session for the given settings.
type AWSConnector interface {
	Connect(ctx context.Context, session types.SessionConfig) (AWSRepository, error)
}

// AWSRepository defines the read-only AWS operations used by the region report.
type AWSRepository interface {
	// Identity
	GetAccountID(ctx context.Context) (string, error)

	// Region Operations
	GetAllRegions(ctx context.Context) ([]entity.RegionDescriptor, error)

	// CountResources returns the number of resources of kind in region, or
	// entity.UnsupportedCount when kind has no counting rule.
	CountResources(ctx context.Context, region string, kind entity.ResourceKind) (int, error)
}
