package utils

import (
	"fmt"
	"strings"
	"time"
)

var dayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// StartCurrentDay возвращает дату с временем 00:00, таймзона остается прежней
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextWeekday возвращает дату следующего указанного дня недели
// Всегда строго в будущем: если сегодня тот же день недели, возвращает +7 дней
// Неизвестное имя дня - явная ошибка, а не тихий возврат текущей даты
func NextWeekday(dayName string, today time.Time) (time.Time, error) {
	target, ok := dayNames[strings.ToLower(dayName)]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown weekday name: %q", dayName)
	}

	daysAhead := (int(target) - int(today.Weekday()) + 7) % 7
	// Если сегодня целевой день, планируем на тот же день следующей недели
	if daysAhead == 0 {
		daysAhead = 7
	}

	return StartCurrentDay(today).AddDate(0, 0, daysAhead), nil
}

// NearestWeekday возвращает дату ближайшего указанного дня недели,
// включая сегодняшнюю дату, если день недели совпадает
func NearestWeekday(target time.Weekday, today time.Time) time.Time {
	daysAhead := (int(target) - int(today.Weekday()) + 7) % 7
	return StartCurrentDay(today).AddDate(0, 0, daysAhead)
}

// ParseClockTime парсит время вида "9:00 AM", "9:00AM" или "14:30"
// Внутренние пробелы убираются, регистр не важен
func ParseClockTime(str string) (time.Time, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(str, " ", ""))

	for _, layout := range []string{"3:04PM", "15:04"} {
		parsedTime, err := time.Parse(layout, cleaned)
		if err == nil {
			return parsedTime, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse clock time: %q", str)
}

// CombineDateTime объединяет дату и время суток в указанной таймзоне
func CombineDateTime(date time.Time, clock time.Time, location *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		location,
	)
}
