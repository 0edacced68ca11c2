package timetable_service

import "regexp"

// CRN - пятизначный идентификатор секции курса
var crnRegexp = regexp.MustCompile(`\d{5}`)

// ExtractCRNs находит все CRN в распознанном тексте расписания
// Порядок первого вхождения, дубликаты сохраняются, валидации нет:
// неизвестные коды отсеет справочник расписаний
func ExtractCRNs(text string) []string {
	matches := crnRegexp.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
