package timetable_service

import (
	"strings"
	"testing"
	"time"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
)

var weekdayDays = map[time.Weekday]domain.DayOfWeek{
	time.Monday:    domain.DayOfWeekMonday,
	time.Tuesday:   domain.DayOfWeekTuesday,
	time.Wednesday: domain.DayOfWeekWednesday,
	time.Thursday:  domain.DayOfWeekThursday,
	time.Friday:    domain.DayOfWeekFriday,
	time.Saturday:  domain.DayOfWeekSaturday,
	time.Sunday:    domain.DayOfWeekSunday,
}

// Двухбуквенные коды дней недели в правиле повторения
var byDayCodes = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

func TestBuildRecurringEventByDayAllWeekdays(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeOcr{}, &fakeCalendar{})
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, config.TimeZone)

	// 2025-09-01 - понедельник
	for offset := 0; offset < 7; offset++ {
		start := time.Date(2025, 9, 1+offset, 9, 0, 0, 0, config.TimeZone)
		day := weekdayDays[start.Weekday()]

		occ := concreteOccurrence("CS1114 Intro", day, start, start.Add(50*time.Minute))

		payload, err := svc.BuildRecurringEvent(occ, "", now)
		if err != nil {
			t.Fatalf("day %s: unexpected error: %v", day, err)
		}

		wantCode := byDayCodes[start.Weekday()]
		if !strings.Contains(payload.RRule, "BYDAY="+wantCode) {
			t.Errorf("day %s: rrule = %q, want BYDAY=%s", day, payload.RRule, wantCode)
		}
		if !strings.Contains(payload.RRule, "FREQ=WEEKLY") {
			t.Errorf("day %s: rrule = %q, want FREQ=WEEKLY", day, payload.RRule)
		}
	}
}

func TestBuildRecurringEventUntilSemesterEnd(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeOcr{}, &fakeCalendar{})
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, config.TimeZone)

	start := time.Date(2025, 9, 1, 9, 0, 0, 0, config.TimeZone)
	occ := concreteOccurrence("CS1114 Intro", domain.DayOfWeekMonday, start, start.Add(50*time.Minute))

	payload, err := svc.BuildRecurringEvent(occ, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Конец серии - конец семестра в UTC
	if !strings.Contains(payload.RRule, "UNTIL=20251214T235959Z") {
		t.Errorf("rrule = %q, want UNTIL=20251214T235959Z", payload.RRule)
	}
}

func TestBuildRecurringEventTargetDayShift(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeOcr{}, &fakeCalendar{})
	// Понедельник
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, config.TimeZone)

	start := time.Date(2025, 9, 1, 9, 0, 0, 0, config.TimeZone)
	occ := concreteOccurrence("CS1114 Intro", domain.DayOfWeekMonday, start, start.Add(50*time.Minute))

	// Пользователь скорректировал день на среду
	payload, err := svc.BuildRecurringEvent(occ, domain.DayOfWeekWednesday, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := payload.Start.Format("2006-01-02"); got != "2025-08-27" {
		t.Errorf("start date = %s, want 2025-08-27", got)
	}
	if payload.Start.Hour() != 9 || payload.Start.Minute() != 0 {
		t.Errorf("time-of-day not preserved: %02d:%02d", payload.Start.Hour(), payload.Start.Minute())
	}
	if payload.End.Hour() != 9 || payload.End.Minute() != 50 {
		t.Errorf("end time-of-day not preserved: %02d:%02d", payload.End.Hour(), payload.End.Minute())
	}
	if !strings.Contains(payload.RRule, "BYDAY=WE") {
		t.Errorf("rrule = %q, want BYDAY=WE", payload.RRule)
	}
}

func TestBuildRecurringEventTargetDayToday(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeOcr{}, &fakeCalendar{})
	// Понедельник, целевой день тоже понедельник: занятие остается на сегодня
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, config.TimeZone)

	start := time.Date(2025, 9, 1, 9, 0, 0, 0, config.TimeZone)
	occ := concreteOccurrence("CS1114 Intro", domain.DayOfWeekMonday, start, start.Add(50*time.Minute))

	payload, err := svc.BuildRecurringEvent(occ, domain.DayOfWeekMonday, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := payload.Start.Format("2006-01-02"); got != "2025-08-25" {
		t.Errorf("start date = %s, want 2025-08-25", got)
	}
}

func TestBuildRecurringEventDegenerate(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeOcr{}, &fakeCalendar{})

	occ := domain.Occurrence{
		Subject:        "CS4994 Undergraduate Research",
		NeedsDaysInput: true,
	}

	if _, err := svc.BuildRecurringEvent(occ, "", time.Now()); err == nil {
		t.Fatal("expected error for occurrence without dates")
	}
}

func TestBuildRecurringEventPayloadFields(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeOcr{}, &fakeCalendar{})
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, config.TimeZone)

	start := time.Date(2025, 9, 1, 9, 0, 0, 0, config.TimeZone)
	occ := concreteOccurrence("CS1114 Intro", domain.DayOfWeekMonday, start, start.Add(50*time.Minute))

	payload, err := svc.BuildRecurringEvent(occ, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.UID == "" {
		t.Error("empty UID")
	}
	if payload.Summary != "CS1114 Intro" {
		t.Errorf("summary = %q", payload.Summary)
	}
	if payload.Location != "McBryde 100" {
		t.Errorf("location = %q", payload.Location)
	}
	if payload.ReminderMinutes != 15 {
		t.Errorf("reminder = %d, want 15", payload.ReminderMinutes)
	}
	if !payload.Start.Equal(start) {
		t.Errorf("start = %v, want %v", payload.Start, start)
	}
}
