package domain

import "time"

// EventPayload - полностью собранное событие для отправки в календарь
// Времена локализованы в таймзоне учебного заведения,
// правило повторения сериализовано в UTC
type EventPayload struct {
	UID             string
	Summary         string
	Location        string
	Start           time.Time
	End             time.Time
	RRule           string
	ReminderMinutes int
}

type EventResultStatus string

const (
	EventResultStatusSuccess EventResultStatus = "success"
	EventResultStatusFailed  EventResultStatus = "failed"
)

// EventResult - результат отправки одного события
type EventResult struct {
	Subject string            `json:"subject"`
	Day     DayOfWeek         `json:"day,omitempty"`
	Status  EventResultStatus `json:"status"`
	EventID string            `json:"id,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// BatchReport - агрегированный результат пакетной отправки
// Пакет никогда не бывает "все или ничего": частичный успех ожидаем
type BatchReport struct {
	Results []EventResult `json:"results"`
	Created int           `json:"created"`
	Message string        `json:"message"`
}
