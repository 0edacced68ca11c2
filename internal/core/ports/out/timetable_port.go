package out

import (
	"context"

	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
)

// TimetablePort - внешний справочник расписаний
// Возвращает domain.ErrSectionNotFound, если CRN неизвестен
type TimetablePort interface {
	LookupSection(ctx context.Context, crn string) (*domain.Section, error)
}
