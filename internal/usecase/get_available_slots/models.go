package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID           int64
	Date                 time.Time           // День в часовом поясе сервиса (без времени)
	Duration             domain.DurationSpec // Один сеанс или цепочка
	ClientLocation       domain.Location
	RequestedGroupID     *string // Групповой визит, к которому относится запись
	ExtraDepartureBuffer int     // минуты
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time
	ProviderID int64
	Duration   domain.DurationSpec
	Slots      []types.TimeString // Начала доступных визитов по возрастанию
}
