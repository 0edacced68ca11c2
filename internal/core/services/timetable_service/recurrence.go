package timetable_service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/utils"
)

var rruleWeekdayMap = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// BuildRecurringEvent собирает из занятия событие с еженедельным
// правилом повторения до конца семестра
//
// Если передан скорректированный день недели, начало и конец занятия
// переносятся на ближайшую (включая сегодня) дату этого дня с
// сохранением времени суток. Правило сериализуется в UTC, сами
// времена события остаются в таймзоне учебного заведения
func (s *TimetableService) BuildRecurringEvent(occurrence domain.Occurrence, targetDay domain.DayOfWeek, now time.Time) (domain.EventPayload, error) {
	if !occurrence.IsConcrete() {
		return domain.EventPayload{}, fmt.Errorf("occurrence %q needs day assignment", occurrence.Subject)
	}

	location := s.timezone()

	// Локализация до любой арифметики, пересекающей границу DST
	start := occurrence.StartDateTime.Date.In(location)
	end := occurrence.EndDateTime.Date.In(location)

	if targetDay != "" {
		if targetWeekday, known := domain.DayOfWeekWeekdayMap[targetDay]; known {
			date := utils.NearestWeekday(targetWeekday, now.In(location))
			start = utils.CombineDateTime(date, start, location)
			end = utils.CombineDateTime(date, end, location)
		}
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdayMap[start.Weekday()]},
		Until:     s.cfg.Semester.End.UTC(),
	})
	if err != nil {
		return domain.EventPayload{}, fmt.Errorf("build recurrence rule: %w", err)
	}

	return domain.EventPayload{
		UID:             uuid.NewString(),
		Summary:         occurrence.Subject,
		Location:        occurrence.Location,
		Start:           start,
		End:             end,
		RRule:           rule.String(),
		ReminderMinutes: s.cfg.Calendar.ReminderMinutes,
	}, nil
}
