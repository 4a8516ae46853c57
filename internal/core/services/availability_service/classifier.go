package availability_service

import (
	"context"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
)

// ClassifyDay определяет характеристику даты по статичной конфигурации
// Детерминирована, поэтому результат можно брать из кэша, если он включен
func (s *AvailabilityService) ClassifyDay(ctx context.Context, date time.Time) domain.DayInfo {
	if s.cache != nil {
		if info, exists := s.cache.GetDayInfo(ctx, date); exists {
			return *info
		}
	}

	info := s.classifyDay(date)

	if s.cache != nil {
		s.cache.StoreDayInfo(ctx, date, info)
	}

	return info
}

func (s *AvailabilityService) classifyDay(date time.Time) domain.DayInfo {
	day := s.startOfDay(date)
	key := s.dateKey(day)

	// Даты за горизонтом конфигурации — задокументированное ограничение,
	// предупреждаем о устаревшем календаре, но не падаем
	if day.After(s.calendar.ValidUntil.Date) {
		s.logger.Warn("calendar.config.stale", out.LogFields{
			"date":       key,
			"validUntil": s.dateKey(s.calendar.ValidUntil.Date),
		})
	}

	_, isBlocked := s.blocked[key]
	_, isHoliday := s.holidays[key]
	isVacation := s.inSchoolVacation(day)

	// Явная блокировка даты всегда побеждает
	_, isWorkingWeekday := s.workingDays[day.Weekday()]
	isWorkingDay := isWorkingWeekday && !isBlocked

	scheduleType := domain.ScheduleTypeNormal
	if isWorkingDay && (isHoliday || isVacation) {
		scheduleType = domain.ScheduleTypeExceptional
	}

	return domain.DayInfo{
		Date:         json_types.NewDate(day),
		IsWorkingDay: isWorkingDay,
		IsHoliday:    isHoliday,
		IsVacation:   isVacation,
		IsBlocked:    isBlocked,
		ScheduleType: scheduleType,
	}
}

// inSchoolVacation проверяет вхождение даты в период каникул, границы включительно
func (s *AvailabilityService) inSchoolVacation(day time.Time) bool {
	for _, vacation := range s.calendar.SchoolVacations {
		start := s.startOfDay(vacation.Start.Date)
		end := s.startOfDay(vacation.End.Date)
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}
	return false
}
