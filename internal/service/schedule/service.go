package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	scheduleRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/schedule"
	"github.com/haderrenteria13/ronald-barber/internal/service/schedule/models"
)

// Service сервис управления рабочими часами и заблокированными датами
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		location:     location,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// GetWeek возвращает расписание недели: ровно семь правил с воскресенья по субботу.
// Дни без сохраненного правила возвращаются как нерабочие 09:00-19:00.
func (s *Service) GetWeek(ctx context.Context) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching weekly business hours")

	week, err := s.resolveWeek(ctx)
	if err != nil {
		s.logger.Error("GetWeek: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(week), nil
}

// UpdateWeek заменяет расписание недели.
// Сохраняются только рабочие дни; остальные при чтении синтезируются как нерабочие.
func (s *Service) UpdateWeek(ctx context.Context, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("UpdateWeek: replacing weekly business hours by admin=%s, rules=%d", req.AdminID, len(req.Rules))

	// 1. Валидируем правила
	active, err := s.validateWeek(req.Rules)
	if err != nil {
		s.logger.Warn("UpdateWeek: validation failed: %v", err)
		return nil, err
	}

	// 2. Заменяем неделю целиком в одной транзакции
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceRules(ctx, active)
	})
	if err != nil {
		s.logger.Error("UpdateWeek: failed to replace rules: %v", err)
		return nil, fmt.Errorf("%w: UpdateWeek - repository error: %v", ErrInternal, err)
	}

	// 3. Возвращаем итоговую неделю
	week, err := s.resolveWeek(ctx)
	if err != nil {
		s.logger.Error("UpdateWeek: failed to read rules back: %v", err)
		return nil, fmt.Errorf("%w: UpdateWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeek: successfully stored %d active days", len(active))
	return models.FromDomainWeek(week), nil
}

// ListBlockedDates возвращает заблокированные даты начиная с from.
// Если from не указан, используется сегодняшний день в часовом поясе барбершопа.
func (s *Service) ListBlockedDates(ctx context.Context, from *time.Time) (*models.BlockedDateListResponse, error) {
	start := domain.StartOfDay(s.timeProvider.Now().In(s.location))
	if from != nil {
		start = domain.StartOfDay(from.In(s.location))
	}

	s.logger.Info("ListBlockedDates: fetching blocked dates from %s", start.Format(domain.DateFormat))

	dates, err := s.scheduleRepo.ListBlockedDates(ctx, start)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDateList(dates), nil
}

// BlockDate закрывает дату для записи
func (s *Service) BlockDate(ctx context.Context, req *models.BlockDateRequest) (*models.BlockedDateResponse, error) {
	date := domain.StartOfDay(req.Date.In(s.location))
	s.logger.Info("BlockDate: blocking date %s by admin=%s", date.Format(domain.DateFormat), req.AdminID)

	// 1. Валидируем входные данные
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if domain.IsDateInPast(date, s.timeProvider.Now().In(s.location)) {
		s.logger.Warn("BlockDate: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	reason := normalizeReason(req.Reason)
	if reason != nil && utf8.RuneCountInString(*reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	// 2. Сохраняем блокировку
	blocked, err := s.scheduleRepo.CreateBlockedDate(ctx, &domain.BlockedDate{
		Date:   date,
		Reason: reason,
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateBlockedDate) {
			s.logger.Warn("BlockDate: date %s is already blocked", date.Format(domain.DateFormat))
			return nil, ErrDateAlreadyBlocked
		}
		s.logger.Error("BlockDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockDate: successfully blocked date %s, id=%d", date.Format(domain.DateFormat), blocked.ID)
	return models.FromDomainBlockedDate(blocked), nil
}

// UnblockDate снимает блокировку даты
func (s *Service) UnblockDate(ctx context.Context, date time.Time, adminID string) error {
	day := domain.StartOfDay(date.In(s.location))
	s.logger.Info("UnblockDate: unblocking date %s by admin=%s", day.Format(domain.DateFormat), adminID)

	if err := s.scheduleRepo.DeleteBlockedDate(ctx, day); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("UnblockDate: date %s is not blocked", day.Format(domain.DateFormat))
			return ErrBlockedDateNotFound
		}
		s.logger.Error("UnblockDate: repository error: %v", err)
		return fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockDate: successfully unblocked date %s", day.Format(domain.DateFormat))
	return nil
}

// Вспомогательные методы

// resolveWeek собирает семь правил недели, синтезируя отсутствующие дни
func (s *Service) resolveWeek(ctx context.Context) ([]domain.WeeklyHourRule, error) {
	stored, err := s.scheduleRepo.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	week := make([]domain.WeeklyHourRule, domain.DaysPerWeek)
	for day := range week {
		week[day] = domain.InactiveRule(time.Weekday(day))
	}
	for _, rule := range stored {
		if rule == nil || rule.DayOfWeek < time.Sunday || rule.DayOfWeek > time.Saturday {
			continue
		}
		week[rule.DayOfWeek] = *rule
	}

	return week, nil
}

// validateWeek проверяет правила недели и возвращает рабочие дни для сохранения
func (s *Service) validateWeek(rules []models.RuleRequest) ([]*domain.WeeklyHourRule, error) {
	if len(rules) > domain.DaysPerWeek {
		return nil, fmt.Errorf("%w: at most %d rules are allowed", ErrInvalidInput, domain.DaysPerWeek)
	}

	seen := make(map[int]struct{}, len(rules))
	active := make([]*domain.WeeklyHourRule, 0, len(rules))

	for i := range rules {
		day := rules[i].DayOfWeek
		if day < int(time.Sunday) || day > int(time.Saturday) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidWeekday)
		}
		if _, ok := seen[day]; ok {
			return nil, fmt.Errorf("%w: day %d", ErrDuplicateWeekday, day)
		}
		seen[day] = struct{}{}

		if !rules[i].IsActive {
			continue
		}

		rule, err := rules[i].ToDomainRule()
		if err != nil {
			return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidInput, day, err)
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidInput, day, err)
		}
		active = append(active, rule)
	}

	return active, nil
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
