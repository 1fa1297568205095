package slots

import "time"

// chainFits проверяет, что цепочка сеансов, начинающаяся в start, укладывается в рабочие часы.
// Сеансы идут подряд без буфера между ними. После последнего сеанса нужен
// общий буфер defaultBuffer * (число сеансов - 1).
//
// Бронирования здесь не проверяются: занятость всей цепочки уже отфильтрована
// по базовой (максимальной) длительности, промежутки между сеансами не проверяются.
func chainFits(start time.Time, sessions []int, defaultBuffer int, hours BusinessHours, granularity int) bool {
	if len(sessions) == 0 {
		return false
	}

	current := start.Hour()*60 + start.Minute()

	for i, duration := range sessions {
		hour, minute := current/60, current%60

		if hour < hours.Earliest || hour >= hours.Latest {
			return false
		}
		if granularity > 0 && minute%granularity != 0 {
			return false
		}

		end := current + duration
		if end/60 >= hours.Latest {
			return false
		}

		if i == len(sessions)-1 {
			trailing := max(defaultBuffer, 0) * (len(sessions) - 1)
			if (end+trailing)/60 >= hours.Latest {
				return false
			}
		}

		current = end
	}

	return true
}
