// Package availability вычисляет свободные для записи моменты начала на один календарный день.
//
// Движок чистый: не обращается к БД, не читает часы и ничего не блокирует. Все данные
// (правило дня недели, флаг блокировки даты, подтвержденные записи, текущее время) передаются
// во входной структуре. Результат носит рекомендательный характер: отсутствие пересечений при
// записи гарантирует тот, кто сохраняет запись.
//
// Кандидаты строятся двумя генераторами:
//   - регулярная сетка с шагом 30 минут от начала рабочего дня;
//   - плотная упаковка: концы подтвержденных записей, чтобы не оставалось "дыр" после услуг
//     нестандартной длительности.
//
// Затем кандидаты объединяются, проверяются валидатором и делятся на утро и вторую половину дня.
package availability

import (
	"fmt"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// Input входные данные для расчета одного дня
type Input struct {
	// TargetDate календарный день в часовом поясе барбершопа (время суток игнорируется)
	TargetDate time.Time

	// ServiceDurationMinutes длительность выбранной услуги
	ServiceDurationMinutes int

	// Rule правило для дня недели TargetDate. nil означает выходной.
	Rule *domain.WeeklyHourRule

	// IsBlocked дата целиком закрыта для записи
	IsBlocked bool

	// Appointments записи этого дня. Учитываются только подтвержденные.
	Appointments []domain.Appointment

	// Now текущее время
	Now time.Time
}

// Engine калькулятор свободных слотов
type Engine struct {
	step             time.Duration
	maxDaysInAdvance int
}

// Option настройка Engine
type Option func(*Engine)

// WithMaxDaysInAdvance задает горизонт бронирования в днях
func WithMaxDaysInAdvance(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.maxDaysInAdvance = days
		}
	}
}

// WithStep задает шаг регулярной сетки
func WithStep(step time.Duration) Option {
	return func(e *Engine) {
		if step > 0 {
			e.step = step
		}
	}
}

// New создает Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		step:             domain.SlotStepMinutes * time.Minute,
		maxDaysInAdvance: domain.DefaultMaxDaysInAdvance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDaysInAdvance возвращает горизонт бронирования в днях
func (e *Engine) MaxDaysInAdvance() int {
	return e.maxDaysInAdvance
}

// Compute возвращает свободные моменты начала для in.TargetDate.
//
// Закрытый день (блокировка, выходной, все занято, услуга не помещается) возвращает
// пустые списки без ошибки. Ошибки:
//   - ErrInput: длительность <= 0 или дата вне горизонта бронирования;
//   - ErrConfig: правило нельзя интерпретировать.
func (e *Engine) Compute(in Input) (*domain.DaySlots, error) {
	if err := e.ValidateInput(in); err != nil {
		return nil, err
	}

	if IsDayClosed(in.Rule, in.IsBlocked) {
		return emptySlots(), nil
	}

	if in.Rule.DayOfWeek != in.TargetDate.Weekday() {
		return nil, fmt.Errorf("%w: %w: rule for %s, date is %s",
			ErrInput, ErrRuleWeekdayMismatch, in.Rule.DayOfWeek, in.TargetDate.Weekday())
	}

	w, err := resolveWindow(in.Rule, in.TargetDate)
	if err != nil {
		return nil, err
	}

	candidates := mergeCandidates(
		gridCandidates(w, e.step),
		packingCandidates(w, in.Appointments),
	)

	duration := time.Duration(in.ServiceDurationMinutes) * time.Minute
	valid := newSlotValidator(w, duration, in.Now, in.Appointments).filter(candidates)

	slots := partition(valid, in.TargetDate.Location())
	return &slots, nil
}

// ValidateInput проверяет длительность и попадание даты в горизонт бронирования:
// от сегодняшнего дня (в часовом поясе TargetDate) до сегодня + maxDaysInAdvance включительно.
func (e *Engine) ValidateInput(in Input) error {
	if in.ServiceDurationMinutes <= 0 {
		return fmt.Errorf("%w: %w: %d minutes", ErrInput, ErrInvalidDuration, in.ServiceDurationMinutes)
	}
	if in.TargetDate.IsZero() {
		return fmt.Errorf("%w: target date is required", ErrInput)
	}

	today := domain.StartOfDay(in.Now.In(in.TargetDate.Location()))
	day := domain.StartOfDay(in.TargetDate)

	if day.Before(today) {
		return fmt.Errorf("%w: %w: %s", ErrInput, ErrDateInPast, day.Format(domain.DateFormat))
	}

	maxDay := today.AddDate(0, 0, e.maxDaysInAdvance)
	if day.After(maxDay) {
		return fmt.Errorf("%w: %w: can only book %d days in advance",
			ErrInput, ErrDateTooFarInFuture, e.maxDaysInAdvance)
	}

	return nil
}

// IsDayClosed возвращает true для заблокированной даты или дня без активного правила
func IsDayClosed(rule *domain.WeeklyHourRule, isBlocked bool) bool {
	return isBlocked || rule == nil || !rule.IsActive
}

func emptySlots() *domain.DaySlots {
	return &domain.DaySlots{
		Morning:   make([]time.Time, 0),
		Afternoon: make([]time.Time, 0),
	}
}
