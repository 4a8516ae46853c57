package domain

import (
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID              uuid.UUID           `json:"id"`
	ClientID        uuid.UUID           `json:"clientId"`
	StartTime       json_types.DateTime `json:"startTime"`
	EndTime         json_types.DateTime `json:"endTime"`
	AppointmentType AppointmentTypeCode `json:"appointmentType"`
	Status          AppointmentStatus   `json:"status"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       json_types.DateTime `json:"createdAt"`
	UpdatedAt       json_types.DateTime `json:"updatedAt"`
}

// Blocks сообщает, занимает ли запись время в календаре
// Отмененные записи остаются в истории, но слоты не блокируют
func (a Appointment) Blocks() bool {
	return a.Status != AppointmentStatusCancelled
}
