package ports

import (
	"context"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
)

// AnalysisRepository persists classification history.
type AnalysisRepository interface {
	Save(ctx context.Context, a domain.Analysis) error
	GetByID(ctx context.Context, id string) (domain.Analysis, error)
	List(ctx context.Context, limit int) ([]domain.Analysis, error)
}

// AnalysisRecorder accepts finished analyses for persistence without blocking the caller.
type AnalysisRecorder interface {
	Record(a domain.Analysis)
}
