package create_availability

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// CreateAvailabilityRequest HTTP модель запроса
type CreateAvailabilityRequest struct {
	Date      string                  `json:"date"`
	StartTime types.TimeString        `json:"start"`
	EndTime   types.TimeString        `json:"end"`
	Type      domain.AvailabilityType `json:"type"`
	Force     bool                    `json:"force,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAvailabilityRequest) ToServiceRequest(userID, providerID int64, loc *time.Location) (*models.CreateAvailabilityRequest, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &models.CreateAvailabilityRequest{
		UserID:     userID,
		ProviderID: providerID,
		Date:       date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Type:       r.Type,
		Force:      r.Force,
	}, nil
}
