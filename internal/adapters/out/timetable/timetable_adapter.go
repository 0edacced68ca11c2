package timetable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

// TimetableAdapter - HTTP-клиент справочника расписаний университета
type TimetableAdapter struct {
	client  *http.Client
	baseURL string
	term    string
	logger  out.LoggerPort
}

func NewTimetableAdapter(cfg *config.Config, logger out.LoggerPort) *TimetableAdapter {
	return &TimetableAdapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: cfg.Timetable.URL,
		term:    cfg.Timetable.Term,
		logger:  logger,
	}
}

func (a *TimetableAdapter) LookupSection(ctx context.Context, crn string) (*domain.Section, error) {
	a.logger.Info("timetable.section.fetch", out.LogFields{
		"crn":  crn,
		"term": a.term,
	})

	url := fmt.Sprintf("%s/terms/%s/sections/%s", a.baseURL, a.term, crn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("timetable.section.fetch_failed", out.LogFields{
			"crn":   crn,
			"error": err.Error(),
		})
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("timetable.section.fetch_failed", out.LogFields{
			"crn":   crn,
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrSectionNotFound
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("timetable.section.fetch_failed", out.LogFields{
			"crn":    crn,
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var section domain.Section
	if err := json.NewDecoder(resp.Body).Decode(&section); err != nil {
		a.logger.Error("timetable.section.decode_failed", out.LogFields{
			"crn":   crn,
			"error": err.Error(),
		})
		return nil, err
	}

	if section.CRN == "" {
		section.CRN = crn
	}

	a.logger.Debug("timetable.section.fetch_success", out.LogFields{
		"crn":  crn,
		"code": section.Code,
		"days": section.Days,
	})

	return &section, nil
}
