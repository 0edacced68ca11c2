package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrOCRUnavailable  = errors.New("ocr engine unavailable")
	ErrImageDecode     = errors.New("could not decode image")
)

// ArrangedMarker - отметка "ARR" в поле дней секции
// Такие секции не имеют фиксированных дней занятий
const ArrangedMarker = "ARR"

type DayOfWeek string

const (
	DayOfWeekMonday    DayOfWeek = "Monday"
	DayOfWeekTuesday   DayOfWeek = "Tuesday"
	DayOfWeekWednesday DayOfWeek = "Wednesday"
	DayOfWeekThursday  DayOfWeek = "Thursday"
	DayOfWeekFriday    DayOfWeek = "Friday"
	DayOfWeekSaturday  DayOfWeek = "Saturday"
	DayOfWeekSunday    DayOfWeek = "Sunday"
)

// DayLetterMap - буквы дней недели из расписания
// R - четверг, U - воскресенье
var DayLetterMap = map[rune]DayOfWeek{
	'M': DayOfWeekMonday,
	'T': DayOfWeekTuesday,
	'W': DayOfWeekWednesday,
	'R': DayOfWeekThursday,
	'F': DayOfWeekFriday,
	'S': DayOfWeekSaturday,
	'U': DayOfWeekSunday,
}

var DayOfWeekWeekdayMap = map[DayOfWeek]time.Weekday{
	DayOfWeekMonday:    time.Monday,
	DayOfWeekTuesday:   time.Tuesday,
	DayOfWeekWednesday: time.Wednesday,
	DayOfWeekThursday:  time.Thursday,
	DayOfWeekFriday:    time.Friday,
	DayOfWeekSaturday:  time.Saturday,
	DayOfWeekSunday:    time.Sunday,
}

// Section - запись о секции курса из внешнего справочника расписаний
// Не изменяется после получения
type Section struct {
	CRN       string `json:"crn"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Days      string `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s Section) IsArranged() bool {
	return strings.Contains(s.Days, ArrangedMarker)
}

// Subject - заголовок события календаря для секции
func (s Section) Subject() string {
	return s.Code + " " + s.Name
}
