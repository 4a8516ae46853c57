package availability_service

import (
	"context"
	"sort"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
)

// generateSlots разворачивает недельные правила в слоты-кандидаты
// за период [startDate, endDate], границы дат включительно
// Чистая генерация: правила переданы снаружи, входные данные не мутируются
func (s *AvailabilityService) generateSlots(ctx context.Context, rules []domain.AvailabilityRule, startDate, endDate time.Time, apptType domain.AppointmentType) []domain.Slot {
	slots := make([]domain.Slot, 0)

	step := time.Duration(s.calendar.SlotDurationMinutes) * time.Minute
	duration := time.Duration(apptType.DurationMinutes) * time.Minute

	from := s.startOfDay(startDate)
	to := s.startOfDay(endDate)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		info := s.ClassifyDay(ctx, day)

		// Заблокированная дата дает ноль слотов независимо от правил
		if info.IsBlocked || !info.IsWorkingDay {
			continue
		}

		for _, rule := range rulesForDay(rules, day.Weekday(), info.ScheduleType) {
			slots = s.appendRuleSlots(slots, rule, day, step, duration, apptType.Code)
		}
	}

	return slots
}

// rulesForDay выбирает активные правила для дня недели и типа расписания
// Правила упорядочиваются по времени начала, чтобы слоты одного дня шли хронологически
func rulesForDay(rules []domain.AvailabilityRule, weekday time.Weekday, scheduleType domain.ScheduleType) []domain.AvailabilityRule {
	matched := make([]domain.AvailabilityRule, 0)
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if rule.DayOfWeek != int(weekday) {
			continue
		}
		if rule.ScheduleType != scheduleType {
			continue
		}
		matched = append(matched, rule)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartTime.Minutes() < matched[j].StartTime.Minutes()
	})

	return matched
}

// appendRuleSlots обходит окно правила [startTime, endTime) с шагом сетки
// Единица итерации — гранулярность сетки, а не длительность приема
// Слот, чей вычисленный конец выходит за границу правила, отбрасывается, не обрезается
func (s *AvailabilityService) appendRuleSlots(slots []domain.Slot, rule domain.AvailabilityRule, day time.Time, step, duration time.Duration, code domain.AppointmentTypeCode) []domain.Slot {
	windowStart := rule.StartTime.On(day, s.location)
	windowEnd := rule.EndTime.On(day, s.location)

	for t := windowStart; t.Before(windowEnd); t = t.Add(step) {
		slotEnd := t.Add(duration)
		if slotEnd.After(windowEnd) {
			continue
		}

		slots = append(slots, domain.Slot{
			Date:            json_types.NewDate(day),
			StartTime:       json_types.NewDateTime(t),
			EndTime:         json_types.NewDateTime(slotEnd),
			AppointmentType: code,
		})
	}

	return slots
}
