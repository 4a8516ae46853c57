package domain

import (
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
)

// Slot — кандидат на бронирование, всегда внутри одного календарного дня
// Эфемерный: пересчитывается на каждый запрос и нигде не сохраняется
type Slot struct {
	Date            json_types.Date     `json:"date"`
	StartTime       json_types.DateTime `json:"startTime"`
	EndTime         json_types.DateTime `json:"endTime"`
	AppointmentType AppointmentTypeCode `json:"appointmentType"`
}
