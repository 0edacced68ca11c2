package out

import (
	"context"

	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
)

type CachePort interface {
	// Кэширование секций по CRN
	GetSection(ctx context.Context, crn string) (*domain.Section, bool)
	StoreSection(ctx context.Context, crn string, section domain.Section)
	InvalidateSection(ctx context.Context, crn string)
}
