package get_available_slots

import (
	"cmp"
	"slices"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// buildWindows строит окна автозаписи на дату: объединяет пересекающиеся окна autobook
// и вырезает из них окна unavailable. Результат отсортирован и не содержит пересечений.
func buildWindows(blocks []*domain.AvailabilityBlock, date time.Time) ([]domain.AvailabilityWindow, error) {
	var open, closed []domain.AvailabilityWindow

	for _, block := range blocks {
		// Дата из БД приходит без часового пояса, время визитов считаем в поясе запроса
		anchored := *block
		anchored.Date = date

		w, err := anchored.Window()
		if err != nil {
			return nil, err
		}

		switch block.Type {
		case domain.AvailabilityAutobook:
			open = append(open, w)
		case domain.AvailabilityUnavailable:
			closed = append(closed, w)
		}
	}

	open = merge(open)
	for _, c := range merge(closed) {
		open = subtract(open, c)
	}

	return open, nil
}

// merge объединяет пересекающиеся и смежные окна
func merge(windows []domain.AvailabilityWindow) []domain.AvailabilityWindow {
	if len(windows) == 0 {
		return windows
	}

	slices.SortFunc(windows, func(a, b domain.AvailabilityWindow) int {
		return cmp.Compare(a.Start.UnixNano(), b.Start.UnixNano())
	})

	merged := []domain.AvailabilityWindow{windows[0]}
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if !w.Start.After(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// subtract вырезает интервал c из каждого окна
func subtract(windows []domain.AvailabilityWindow, c domain.AvailabilityWindow) []domain.AvailabilityWindow {
	result := make([]domain.AvailabilityWindow, 0, len(windows)+1)
	for _, w := range windows {
		if !c.Start.Before(w.End) || !c.End.After(w.Start) {
			result = append(result, w)
			continue
		}
		if c.Start.After(w.Start) {
			result = append(result, domain.AvailabilityWindow{Date: w.Date, Start: w.Start, End: c.Start})
		}
		if c.End.Before(w.End) {
			result = append(result, domain.AvailabilityWindow{Date: w.Date, Start: c.End, End: w.End})
		}
	}
	return result
}
