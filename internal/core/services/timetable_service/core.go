package timetable_service

import (
	"context"
	"sync"
	"time"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

type TimetableService struct {
	timetablePort out.TimetablePort
	ocrPort       out.OcrPort
	calendarPort  out.CalendarPort
	cachePort     out.CachePort
	logger        out.LoggerPort
	cfg           *config.Config
}

func NewTimetableService(
	timetablePort out.TimetablePort,
	ocrPort out.OcrPort,
	calendarPort out.CalendarPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *TimetableService {
	return &TimetableService{
		timetablePort: timetablePort,
		ocrPort:       ocrPort,
		calendarPort:  calendarPort,
		cachePort:     cachePort,
		logger:        logger.WithModule("TimetableService"),
		cfg:           cfg,
	}
}

func (s *TimetableService) timezone() *time.Location {
	if config.TimeZone != nil {
		return config.TimeZone
	}
	return time.UTC
}

// ParseTimetableImage распознает текст изображения и разбирает расписание
// Распознанный текст возвращается вместе с занятиями: при пустом разборе
// он отдается пользователю для диагностики
func (s *TimetableService) ParseTimetableImage(ctx context.Context, image []byte) ([]domain.Occurrence, string, error) {
	text, err := s.ocrPort.ExtractText(ctx, image)
	if err != nil {
		s.logger.Error("timetable.ocr.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, "", err
	}

	return s.ParseTimetableText(ctx, text), text, nil
}

// ParseTimetableText извлекает CRN из текста, запрашивает секции
// и нормализует их в занятия. Ошибка одного CRN не прерывает пакет
func (s *TimetableService) ParseTimetableText(ctx context.Context, text string) []domain.Occurrence {
	crns := ExtractCRNs(text)

	s.logger.Info("timetable.parse.started", out.LogFields{
		"crns": crns,
	})

	// Запрашиваем секции параллельно через пул воркеров
	// Каждый воркер пишет только в свой индекс, поэтому порядок
	// исходных идентификаторов восстанавливается без сортировки
	sections := make([]*domain.Section, len(crns))
	workerPool := make(chan struct{}, s.cfg.Resolver.Workers)
	var wg sync.WaitGroup

	for i, crn := range crns {
		wg.Add(1)
		workerPool <- struct{}{}

		go func(index int, crn string) {
			defer func() {
				<-workerPool
				wg.Done()
			}()

			section, err := s.resolveSection(ctx, crn)
			if err != nil {
				// Нерезолвящийся CRN пропускаем, пакет продолжается
				s.logger.Warn("timetable.parse.lookup_failed", out.LogFields{
					"crn":   crn,
					"error": err.Error(),
				})
				return
			}
			sections[index] = section
		}(i, crn)
	}

	wg.Wait()

	today := time.Now().In(s.timezone())
	occurrences := make([]domain.Occurrence, 0)

	for _, section := range sections {
		if section == nil {
			continue
		}
		occurrences = append(occurrences, s.normalizeSection(*section, today)...)
	}

	s.logger.Info("timetable.parse.finished", out.LogFields{
		"crnsCount":        len(crns),
		"occurrencesCount": len(occurrences),
	})

	return occurrences
}

func (s *TimetableService) resolveSection(ctx context.Context, crn string) (*domain.Section, error) {
	// Проверяем кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if section, exists := s.cachePort.GetSection(ctx, crn); exists {
			s.logger.Debug("timetable.section.cache.hit", out.LogFields{
				"crn": crn,
			})
			return section, nil
		}
	}

	section, err := s.timetablePort.LookupSection(ctx, crn)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreSection(ctx, crn, *section)
	}

	return section, nil
}
