package update_business_hours

import (
	"github.com/haderrenteria13/ronald-barber/internal/service/schedule/models"
)

// UpdateBusinessHoursRequest HTTP request model
type UpdateBusinessHoursRequest struct {
	Rules []BusinessHourRule `json:"rules"`
}

// BusinessHourRule правило одного дня недели
type BusinessHourRule struct {
	DayOfWeek  int     `json:"dayOfWeek"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	IsActive   bool    `json:"isActive"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBusinessHoursRequest) ToServiceRequest(adminID string) *models.UpdateWeekRequest {
	rules := make([]models.RuleRequest, len(r.Rules))
	for i, rule := range r.Rules {
		rules[i] = models.RuleRequest{
			DayOfWeek:  rule.DayOfWeek,
			StartTime:  rule.StartTime,
			EndTime:    rule.EndTime,
			BreakStart: rule.BreakStart,
			BreakEnd:   rule.BreakEnd,
			IsActive:   rule.IsActive,
		}
	}

	return &models.UpdateWeekRequest{
		AdminID: adminID,
		Rules:   rules,
	}
}
