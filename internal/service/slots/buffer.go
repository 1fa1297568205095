package slots

import "github.com/m04kA/SMC-VisitScheduler/internal/domain"

// BufferBetween вычисляет минимальный зазор в минутах между first и следующим за ним second.
// Правила проверяются по порядку, срабатывает первое подходящее:
//  1. одной из сторон нет - defaultBuffer;
//  2. общая группа и один и тот же адрес - 0 (визиты группы идут подряд);
//  3. first последний в группе и у него есть доп. время на отъезд -
//     defaultBuffer * размер группы + доп. время;
//  4. иначе defaultBuffer.
//
// all - все бронирования дня, по ним считается размер группы.
func BufferBetween(first, second *domain.Booking, defaultBuffer int, all []*domain.Booking) int {
	def := max(defaultBuffer, 0)

	if first == nil || second == nil {
		return def
	}

	if first.SameGroup(second) && first.Location.SameAddress(second.Location) {
		return 0
	}

	if first.HasGroup() && first.IsLastInGroup && first.ExtraDepartureBuffer > 0 {
		return def*groupSize(*first.GroupID, all) + first.ExtraDepartureBuffer
	}

	return def
}

// groupSize считает визиты группы среди переданных бронирований; сервис передаёт
// только активные, поэтому отменённые визиты группы размер не увеличивают.
func groupSize(groupID string, all []*domain.Booking) int {
	size := 0
	for _, b := range all {
		if b.GroupID != nil && *b.GroupID == groupID {
			size++
		}
	}
	return size
}
