package slots

import (
	"iter"
	"time"
)

// candidates перечисляет начала слотов с шагом interval от windowStart,
// пока слот длительностью baseline помещается в окно.
// Последовательность можно обходить повторно.
//
// Слоты, пересекающие смену смещения зоны (переход на летнее время), пропускаются.
func candidates(windowStart, windowEnd time.Time, interval, baseline time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if interval <= 0 || baseline <= 0 {
			return
		}

		for t := windowStart; !t.Add(baseline).After(windowEnd); t = t.Add(interval) {
			if spansOffsetChange(t, t.Add(baseline)) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func spansOffsetChange(start, end time.Time) bool {
	_, startOffset := start.Zone()
	_, endOffset := end.Zone()
	return startOffset != endOffset
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
