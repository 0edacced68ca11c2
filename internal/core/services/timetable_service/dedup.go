package timetable_service

import "github.com/ArnavMhatre/vtcalapp/internal/core/domain"

// DeduplicateOccurrences устраняет дубликаты занятий
// Для каждого ключа остается первое вхождение, порядок выживших
// следует порядку входа. Операция стабильна и идемпотентна
func DeduplicateOccurrences(occurrences []domain.Occurrence) []domain.Occurrence {
	seen := make(map[domain.DedupKey]struct{}, len(occurrences))
	unique := make([]domain.Occurrence, 0, len(occurrences))

	for _, occurrence := range occurrences {
		key := occurrence.DedupKey()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, occurrence)
	}

	return unique
}
