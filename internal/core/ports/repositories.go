package ports

import (
	"context"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// CheckLogRepository persists an audit row per completed full check.
// The core itself is stateless; this trail exists for operations only.
type CheckLogRepository interface {
	Insert(ctx context.Context, rec *domain.CheckRecord) error
	Recent(ctx context.Context, limit int) ([]domain.CheckRecord, error)
}
