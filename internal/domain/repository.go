package domain

import (
	"context"

	"github.com/google/uuid"
)

// StatusRepository defines the interface for status check persistence
type StatusRepository interface {
	// Save stores a new status check
	Save(ctx context.Context, check *StatusCheck) error

	// List retrieves status checks, newest first, up to limit
	List(ctx context.Context, limit int) ([]*StatusCheck, error)
}

// ScanRepository defines the interface for scan result persistence
type ScanRepository interface {
	// Save stores the summary of one pipeline run
	Save(ctx context.Context, result *ScanResult) error

	// GetRecent retrieves the most recent scan results
	GetRecent(ctx context.Context, limit int) ([]*ScanResult, error)

	// GetByID retrieves a scan result by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*ScanResult, error)
}
