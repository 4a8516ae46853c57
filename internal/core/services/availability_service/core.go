package availability_service

import (
	"context"
	"fmt"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/utils"
)

// GetAvailableSlots — внешне видимая операция движка доступности
// Результат не кэшируется: каждый вызов пересчитывается от актуальных записей
func (s *AvailabilityService) GetAvailableSlots(ctx context.Context, startDate, endDate time.Time, typeCode domain.AppointmentTypeCode, publicOnly bool) ([]domain.Slot, error) {
	s.logger.Info("availability.query.started", out.LogFields{
		"startDate":       s.dateKey(startDate),
		"endDate":         s.dateKey(endDate),
		"appointmentType": typeCode,
	})

	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	apptType, exists := s.calendar.AppointmentTypeByCode(typeCode)
	if !exists {
		return nil, ErrUnknownAppointmentType
	}
	if publicOnly && !apptType.OnlineBookable {
		return nil, ErrTypeNotBookableOnline
	}

	rules, err := s.storage.ListActiveRules(ctx)
	if err != nil {
		s.logger.Error("availability.rules.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("availability.rules.fetch_failed: %w", err)
	}

	candidates := s.generateSlots(ctx, rules, startDate, endDate, apptType)

	// Записи грузим за период [начало первого дня, начало дня после последнего)
	rangeStart := s.startOfDay(startDate)
	rangeEnd := utils.StartNextDay(s.startOfDay(endDate))

	appointments, err := s.storage.ListOverlappingAppointments(ctx, rangeStart, rangeEnd)
	if err != nil {
		s.logger.Error("availability.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("availability.appointments.fetch_failed: %w", err)
	}

	// Порог минимального срока записи, при нулевом сроке вырождается в «строго позже сейчас»
	noticeThreshold := s.now().Add(s.noticeWindow())

	// Порядок генерации хронологический, фильтрация его сохраняет
	available := make([]domain.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if !slot.StartTime.Date.After(noticeThreshold) {
			continue
		}
		if hasConflict(slot, appointments) {
			continue
		}
		available = append(available, slot)
	}

	s.logger.Info("availability.query.done", out.LogFields{
		"candidates": len(candidates),
		"available":  len(available),
	})

	return available, nil
}

// hasConflict проверяет пересечение слота с неотмененной записью
// Полуоткрытые интервалы: касание границ конфликтом не считается
func hasConflict(slot domain.Slot, appointments []domain.Appointment) bool {
	for _, apt := range appointments {
		if !apt.Blocks() {
			continue
		}
		if overlaps(slot.StartTime.Date, slot.EndTime.Date, apt.StartTime.Date, apt.EndTime.Date) {
			return true
		}
	}
	return false
}

func overlaps(slotStart, slotEnd, aptStart, aptEnd time.Time) bool {
	return aptEnd.After(slotStart) && aptStart.Before(slotEnd)
}
