package models

import (
	"fmt"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/pkg/types"
)

// Request модели

// RuleRequest правило рабочего дня в запросе на обновление недели
type RuleRequest struct {
	DayOfWeek  int     `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	IsActive   bool    `json:"isActive"`
}

// UpdateWeekRequest запрос на замену расписания недели
type UpdateWeekRequest struct {
	AdminID string        `json:"-"`
	Rules   []RuleRequest `json:"rules"`
}

// BlockDateRequest запрос на блокировку даты
type BlockDateRequest struct {
	AdminID string    `json:"-"`
	Date    time.Time `json:"date"`
	Reason  *string   `json:"reason,omitempty"`
}

// Response модели

// RuleResponse правило рабочего дня
type RuleResponse struct {
	DayOfWeek  int     `json:"dayOfWeek"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	IsActive   bool    `json:"isActive"`
}

// WeekResponse расписание недели: ровно семь правил, с воскресенья по субботу
type WeekResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// Методы конвертации

// ToDomainRule конвертирует правило из запроса в domain модель.
// Пустые строки перерыва означают отсутствие перерыва.
func (r *RuleRequest) ToDomainRule() (*domain.WeeklyHourRule, error) {
	rule := &domain.WeeklyHourRule{
		DayOfWeek: time.Weekday(r.DayOfWeek),
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
		IsActive:  r.IsActive,
	}

	breakStart, err := optionalTime(r.BreakStart)
	if err != nil {
		return nil, fmt.Errorf("breakStart: %w", err)
	}
	breakEnd, err := optionalTime(r.BreakEnd)
	if err != nil {
		return nil, fmt.Errorf("breakEnd: %w", err)
	}
	rule.BreakStart = breakStart
	rule.BreakEnd = breakEnd

	return rule, nil
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.WeeklyHourRule) RuleResponse {
	resp := RuleResponse{
		DayOfWeek: int(r.DayOfWeek),
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
		IsActive:  r.IsActive,
	}
	if r.HasBreak() {
		breakStart := r.BreakStart.String()
		breakEnd := r.BreakEnd.String()
		resp.BreakStart = &breakStart
		resp.BreakEnd = &breakEnd
	}
	return resp
}

// FromDomainWeek конвертирует неделю правил в DTO
func FromDomainWeek(rules []domain.WeeklyHourRule) *WeekResponse {
	resp := &WeekResponse{
		Rules: make([]RuleResponse, len(rules)),
	}
	for i := range rules {
		resp.Rules[i] = FromDomainRule(&rules[i])
	}
	return resp
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}
	return &BlockedDateResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список domain моделей в DTO
func FromDomainBlockedDateList(dates []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(dates)),
	}
	for _, d := range dates {
		if item := FromDomainBlockedDate(d); item != nil {
			resp.BlockedDates = append(resp.BlockedDates, *item)
		}
	}
	return resp
}

func optionalTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
