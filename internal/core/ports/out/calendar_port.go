package out

import (
	"context"

	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
)

// CalendarPort - внешний календарь
// Возвращает идентификатор созданного события
type CalendarPort interface {
	SubmitEvent(ctx context.Context, event domain.EventPayload) (string, error)
}
