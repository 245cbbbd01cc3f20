package create_blocked_date

import (
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/internal/service/schedule/models"
)

// CreateBlockedDateRequest HTTP request model
type CreateBlockedDateRequest struct {
	Date   string  `json:"date"` // "2026-03-24"
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса (дата в часовом поясе барбершопа)
func (r *CreateBlockedDateRequest) ToServiceRequest(adminID string, loc *time.Location) (*models.BlockDateRequest, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &models.BlockDateRequest{
		AdminID: adminID,
		Date:    date,
		Reason:  r.Reason,
	}, nil
}
