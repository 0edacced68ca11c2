package in

import (
	"context"

	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
)

type TimetableUseCase interface {
	// Распознавание текста изображения и разбор расписания
	ParseTimetableImage(ctx context.Context, image []byte) ([]domain.Occurrence, string, error)

	// Разбор уже распознанного текста расписания
	ParseTimetableText(ctx context.Context, text string) []domain.Occurrence

	// Пакетная отправка занятий в календарь с устранением дубликатов
	SubmitEvents(ctx context.Context, occurrences []domain.Occurrence) domain.BatchReport
}
