package domain

import (
	"github.com/ArnavMhatre/vtcalapp/internal/core/json_types"
)

// Occurrence - одно конкретное занятие, готовое к отправке в календарь
// Для секций с отметкой ARR создается вырожденный вариант: без даты,
// с исходными строками времени и флагом needs_days_input
type Occurrence struct {
	Subject        string                     `json:"subject"`
	Location       string                     `json:"location"`
	Day            DayOfWeek                  `json:"day,omitempty"`
	StartDateTime  json_types.DateTimeOrEmpty `json:"start_datetime"`
	EndDateTime    json_types.DateTimeOrEmpty `json:"end_datetime"`
	NeedsDaysInput bool                       `json:"needs_days_input,omitempty"`
	StartTimeStr   string                     `json:"start_time_str,omitempty"`
	EndTimeStr     string                     `json:"end_time_str,omitempty"`
}

func (o Occurrence) IsConcrete() bool {
	return !o.StartDateTime.Date.IsZero() && !o.EndDateTime.Date.IsZero()
}

// DedupKey - идентичность занятия для устранения дубликатов
// Два занятия с одинаковым ключом считаются одним и тем же
type DedupKey struct {
	Subject  string
	Day      DayOfWeek
	Start    string
	End      string
	Location string
}

func (o Occurrence) DedupKey() DedupKey {
	key := DedupKey{
		Subject:  o.Subject,
		Day:      o.Day,
		Start:    o.StartTimeStr,
		End:      o.EndTimeStr,
		Location: o.Location,
	}

	// Для конкретных занятий без исходных строк времени
	// используем представление дат
	if key.Start == "" && !o.StartDateTime.Date.IsZero() {
		key.Start = o.StartDateTime.Date.Format("2006-01-02T15:04:05")
	}
	if key.End == "" && !o.EndDateTime.Date.IsZero() {
		key.End = o.EndDateTime.Date.Format("2006-01-02T15:04:05")
	}

	return key
}
