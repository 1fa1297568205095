package slots

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

const (
	DefaultTravelTimeout        = 5 * time.Second
	DefaultMaxConcurrentLookups = 8
)

// BusinessHours границы рабочего дня для цепочки сеансов, в часах: [Earliest, Latest)
type BusinessHours struct {
	Earliest int
	Latest   int
}

// Params параметры расчёта слотов
type Params struct {
	IntervalMinutes         int           // шаг сетки кандидатов
	ChainGranularityMinutes int           // кратность минут начала каждого сеанса цепочки
	ArrivalMarginMinutes    int           // за сколько минут до начала нужно приехать
	DepartureMarginMinutes  int           // за сколько минут до следующего визита нужно доехать
	Hours                   BusinessHours // границы для цепочек
	TravelTimeout           time.Duration // таймаут одного запроса времени в пути
	MaxConcurrentLookups    int           // параллельность проверки времени в пути
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		IntervalMinutes:         domain.DefaultSlotIntervalMinutes,
		ChainGranularityMinutes: domain.ChainGranularityMinutes,
		ArrivalMarginMinutes:    domain.DefaultArrivalMarginMinutes,
		DepartureMarginMinutes:  domain.DefaultDepartureMarginMinutes,
		Hours: BusinessHours{
			Earliest: domain.DefaultEarliestHour,
			Latest:   domain.DefaultLatestHour,
		},
		TravelTimeout:        DefaultTravelTimeout,
		MaxConcurrentLookups: DefaultMaxConcurrentLookups,
	}
}

// withDefaults заполняет незаданные поля значениями по умолчанию.
// Отступы 0 допустимы и не перезаписываются.
func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.IntervalMinutes <= 0 {
		p.IntervalMinutes = def.IntervalMinutes
	}
	if p.ChainGranularityMinutes <= 0 {
		p.ChainGranularityMinutes = def.ChainGranularityMinutes
	}
	if p.ArrivalMarginMinutes < 0 {
		p.ArrivalMarginMinutes = def.ArrivalMarginMinutes
	}
	if p.DepartureMarginMinutes < 0 {
		p.DepartureMarginMinutes = def.DepartureMarginMinutes
	}
	if p.Hours.Latest <= p.Hours.Earliest {
		p.Hours = def.Hours
	}
	if p.TravelTimeout <= 0 {
		p.TravelTimeout = def.TravelTimeout
	}
	if p.MaxConcurrentLookups <= 0 {
		p.MaxConcurrentLookups = def.MaxConcurrentLookups
	}
	return p
}
