package timetable_service

import (
	"context"
	"fmt"
	"time"

	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

// SubmitEvents отправляет пакет занятий в календарь
//
// Перед отправкой пакет дедуплицируется. Каждое занятие отправляется
// независимо: результат собирается по каждому элементу, частичный
// успех не откатывается. День занятия используется как целевой день
// правила повторения - пользователь мог скорректировать его вручную
func (s *TimetableService) SubmitEvents(ctx context.Context, occurrences []domain.Occurrence) domain.BatchReport {
	unique := DeduplicateOccurrences(occurrences)

	s.logger.Info("events.submit.started", out.LogFields{
		"received": len(occurrences),
		"unique":   len(unique),
	})

	now := time.Now().In(s.timezone())
	results := make([]domain.EventResult, 0, len(unique))
	created := 0

	for _, occurrence := range unique {
		result := domain.EventResult{
			Subject: occurrence.Subject,
			Day:     occurrence.Day,
		}

		payload, err := s.BuildRecurringEvent(occurrence, occurrence.Day, now)
		if err != nil {
			result.Status = domain.EventResultStatusFailed
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		eventID, err := s.calendarPort.SubmitEvent(ctx, payload)
		if err != nil {
			s.logger.Error("events.submit.event_failed", out.LogFields{
				"subject": occurrence.Subject,
				"day":     occurrence.Day,
				"error":   err.Error(),
			})
			result.Status = domain.EventResultStatusFailed
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		s.logger.Info("events.submit.event_created", out.LogFields{
			"subject": occurrence.Subject,
			"day":     occurrence.Day,
			"eventId": eventID,
		})

		result.Status = domain.EventResultStatusSuccess
		result.EventID = eventID
		results = append(results, result)
		created++
	}

	return domain.BatchReport{
		Results: results,
		Created: created,
		Message: fmt.Sprintf("Created %d recurring events in calendar.", created),
	}
}
