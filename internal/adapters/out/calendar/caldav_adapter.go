package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

// CaldavAdapter - внешний календарь по протоколу CalDAV
// Учетные данные передаются конфигурацией, а не читаются из файлов
type CaldavAdapter struct {
	baseURL      string
	calendarPath string
	client       *caldav.Client
	logger       out.LoggerPort
}

type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

func NewCaldavAdapter(cfg *config.Config, logger out.LoggerPort) (*CaldavAdapter, error) {
	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: cfg.Calendar.Username,
			password: cfg.Calendar.Password,
		},
		Timeout: 30 * time.Second,
	}

	client, err := caldav.NewClient(httpClient, cfg.Calendar.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	return &CaldavAdapter{
		baseURL:      cfg.Calendar.URL,
		calendarPath: cfg.Calendar.Path,
		client:       client,
		logger:       logger,
	}, nil
}

func (a *CaldavAdapter) SubmitEvent(ctx context.Context, event domain.EventPayload) (string, error) {
	a.logger.Info("calendar.event.submit", out.LogFields{
		"summary": event.Summary,
		"uid":     event.UID,
	})

	cal := eventToICS(event)

	eventPath := a.calendarPath
	if !strings.HasSuffix(eventPath, "/") {
		eventPath += "/"
	}
	eventPath += event.UID + ".ics"

	if _, err := a.client.PutCalendarObject(ctx, eventPath, cal); err != nil {
		a.logger.Error("calendar.event.submit_failed", out.LogFields{
			"summary": event.Summary,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("create event: %w", err)
	}

	a.logger.Debug("calendar.event.submit_success", out.LogFields{
		"uid":  event.UID,
		"path": eventPath,
	})

	return event.UID, nil
}

// eventToICS собирает VEVENT с правилом повторения и напоминанием
func eventToICS(event domain.EventPayload) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//vtcalapp//CalDAV//EN")

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, event.UID)
	vevent.Props.SetText(ical.PropSummary, event.Summary)

	if event.Location != "" {
		vevent.Props.SetText(ical.PropLocation, event.Location)
	}

	// Переводим в UTC, чтобы избежать проблем с таймзонами
	vevent.Props.SetDateTime(ical.PropDateTimeStart, event.Start.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, event.End.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	if event.RRule != "" {
		vevent.Props.SetText(ical.PropRecurrenceRule, event.RRule)
	}

	// Единственное напоминание за заданное число минут до начала
	if event.ReminderMinutes > 0 {
		alarm := ical.NewComponent(ical.CompAlarm)
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, event.Summary)
		alarm.Props.SetText(ical.PropTrigger, fmt.Sprintf("-PT%dM", event.ReminderMinutes))
		vevent.Children = append(vevent.Children, alarm)
	}

	cal.Children = append(cal.Children, vevent.Component)
	return cal
}
