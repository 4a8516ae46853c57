package domain

import (
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/google/uuid"
)

type ScheduleType string

const (
	ScheduleTypeNormal      ScheduleType = "normal"
	ScheduleTypeExceptional ScheduleType = "exceptional"
)

// AvailabilityRule — повторяющееся недельное окно приема
// День недели в формате time.Weekday: 0 — воскресенье, 6 — суббота
type AvailabilityRule struct {
	ID           uuid.UUID            `json:"id"`
	DayOfWeek    int                  `json:"dayOfWeek"`
	StartTime    json_types.ClockTime `json:"startTime"`
	EndTime      json_types.ClockTime `json:"endTime"`
	IsActive     bool                 `json:"isActive"`
	ScheduleType ScheduleType         `json:"scheduleType"`
}
