package timetable_service

import (
	"time"

	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/json_types"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
	"github.com/ArnavMhatre/vtcalapp/internal/utils"
)

// normalizeSection превращает секцию в список занятий
//
// Секция с отметкой ARR дает ровно одно вырожденное занятие без даты:
// назначение дней откладывается на решение пользователя.
// Иначе на каждую известную букву дня создается одно конкретное занятие
// с ближайшей будущей датой этого дня недели. Нечитаемое время
// отбрасывает только занятие этого дня, остальные дни обрабатываются
func (s *TimetableService) normalizeSection(section domain.Section, today time.Time) []domain.Occurrence {
	if section.IsArranged() {
		return []domain.Occurrence{{
			Subject:        section.Subject(),
			Location:       section.Location,
			NeedsDaysInput: true,
			StartTimeStr:   section.StartTime,
			EndTimeStr:     section.EndTime,
		}}
	}

	occurrences := make([]domain.Occurrence, 0, len(section.Days))

	for _, letter := range section.Days {
		day, known := domain.DayLetterMap[letter]
		if !known {
			continue
		}

		date, err := utils.NextWeekday(string(day), today)
		if err != nil {
			continue
		}

		startClock, err := utils.ParseClockTime(section.StartTime)
		if err != nil {
			s.logger.Warn("timetable.normalize.bad_start_time", out.LogFields{
				"crn":       section.CRN,
				"startTime": section.StartTime,
			})
			continue
		}

		endClock, err := utils.ParseClockTime(section.EndTime)
		if err != nil {
			s.logger.Warn("timetable.normalize.bad_end_time", out.LogFields{
				"crn":     section.CRN,
				"endTime": section.EndTime,
			})
			continue
		}

		occurrences = append(occurrences, domain.Occurrence{
			Subject:       section.Subject(),
			Location:      section.Location,
			Day:           day,
			StartDateTime: json_types.DateTimeOrEmpty{Date: utils.CombineDateTime(date, startClock, s.timezone())},
			EndDateTime:   json_types.DateTimeOrEmpty{Date: utils.CombineDateTime(date, endClock, s.timezone())},
		})
	}

	return occurrences
}
