package domain

import (
	"fmt"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
)

// VacationRange — период школьных каникул, границы включительно
type VacationRange struct {
	Label string          `json:"label"`
	Zone  string          `json:"zone"`
	Start json_types.Date `json:"start"`
	End   json_types.Date `json:"end"`
}

// CalendarConfig — статичная конфигурация календаря кабинета
// Автор правит ее вне приложения, в рантайме только чтение
type CalendarConfig struct {
	AppointmentTypes      []AppointmentType  `json:"appointmentTypes"`
	Rules                 []AvailabilityRule `json:"rules"`
	Holidays              []json_types.Date  `json:"holidays"`
	SchoolVacations       []VacationRange    `json:"schoolVacations"`
	BlockedDates          []json_types.Date  `json:"blockedDates"`
	WorkingDays           []int              `json:"workingDays"`
	SlotDurationMinutes   int                `json:"slotDurationMinutes"`
	MinBookingNoticeHours int                `json:"minBookingNoticeHours"`
	ValidUntil            json_types.Date    `json:"validUntil"`
}

// Validate проверяет конфигурацию при старте, ошибки здесь фатальны:
// без корректных правил генерация слотов бессмысленна
func (c *CalendarConfig) Validate() error {
	if len(c.AppointmentTypes) == 0 {
		return fmt.Errorf("calendar config: no appointment types defined")
	}
	for _, t := range c.AppointmentTypes {
		if t.Code == "" {
			return fmt.Errorf("calendar config: appointment type with empty code")
		}
		if t.DurationMinutes <= 0 {
			return fmt.Errorf("calendar config: appointment type %q has non-positive duration", t.Code)
		}
	}

	if c.SlotDurationMinutes <= 0 {
		return fmt.Errorf("calendar config: slot duration must be positive, got %d", c.SlotDurationMinutes)
	}
	if c.MinBookingNoticeHours < 0 {
		return fmt.Errorf("calendar config: negative booking notice: %d", c.MinBookingNoticeHours)
	}

	if len(c.WorkingDays) == 0 {
		return fmt.Errorf("calendar config: empty working day set")
	}
	for _, d := range c.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("calendar config: working day out of range: %d", d)
		}
	}

	for _, r := range c.Rules {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return fmt.Errorf("calendar config: rule %s: day of week out of range: %d", r.ID, r.DayOfWeek)
		}
		if r.ScheduleType != ScheduleTypeNormal && r.ScheduleType != ScheduleTypeExceptional {
			return fmt.Errorf("calendar config: rule %s: unknown schedule type %q", r.ID, r.ScheduleType)
		}
		if r.StartTime.Minutes() >= r.EndTime.Minutes() {
			return fmt.Errorf("calendar config: rule %s: start time is not before end time", r.ID)
		}
	}

	for _, v := range c.SchoolVacations {
		if v.End.Date.Before(v.Start.Date) {
			return fmt.Errorf("calendar config: vacation %q ends before it starts", v.Label)
		}
	}

	if c.ValidUntil.Date.IsZero() {
		return fmt.Errorf("calendar config: validUntil is required")
	}

	return nil
}

// AppointmentTypeByCode возвращает вид приема по коду
func (c *CalendarConfig) AppointmentTypeByCode(code AppointmentTypeCode) (AppointmentType, bool) {
	for _, t := range c.AppointmentTypes {
		if t.Code == code {
			return t, true
		}
	}
	return AppointmentType{}, false
}

// DayInfo — производная характеристика конкретной даты, никогда не хранится
type DayInfo struct {
	Date         json_types.Date `json:"date"`
	IsWorkingDay bool            `json:"isWorkingDay"`
	IsHoliday    bool            `json:"isHoliday"`
	IsVacation   bool            `json:"isVacation"`
	IsBlocked    bool            `json:"isBlocked"`
	ScheduleType ScheduleType    `json:"scheduleType"`
}
