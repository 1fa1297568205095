package update_availability

import (
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// UpdateAvailabilityRequest HTTP модель запроса, все поля опциональны
type UpdateAvailabilityRequest struct {
	StartTime *types.TimeString        `json:"start,omitempty"`
	EndTime   *types.TimeString        `json:"end,omitempty"`
	Type      *domain.AvailabilityType `json:"type,omitempty"`
	Force     bool                     `json:"force,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(userID int64) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		UserID:    userID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Type:      r.Type,
		Force:     r.Force,
	}
}
