package json_types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
)

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	// Если не удалось, пробуем дату со временем, но без таймзоны
	// Даты без таймзоны интерпретируем в таймзоне учебного заведения
	if err != nil {
		location := config.TimeZone
		if location == nil {
			location = time.UTC
		}
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation("2006-01-02", str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}

type DateTime struct {
	Date time.Time
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	// Ожидаем JSON-строку: числа, объекты и прочие токены - ошибка
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("expected JSON string for datetime, got: %s", data)
	}

	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02T15:04:05"))
}

// DateTimeOrEmpty - дата-время, допускающее отсутствие значения
// Вырожденные занятия (ARR) не имеют вычисленной даты
type DateTimeOrEmpty struct {
	Date time.Time
}

func (t *DateTimeOrEmpty) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	dt := DateTime{}
	err := dt.UnmarshalJSON(data)
	if err != nil {
		return err
	}

	*t = DateTimeOrEmpty{Date: dt.Date}
	return nil
}

func (t DateTimeOrEmpty) MarshalJSON() ([]byte, error) {
	if t.Date.IsZero() {
		return json.Marshal(nil)
	}

	return DateTime{Date: t.Date}.MarshalJSON()
}
