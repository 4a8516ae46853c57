package domain

import (
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/google/uuid"
)

// BookingRequest — выбранный слот плюс данные пациента
// Время окончания клиент не передает: оно выводится из вида приема
type BookingRequest struct {
	Date            json_types.Date      `json:"date" binding:"required"`
	StartTime       json_types.ClockTime `json:"startTime" binding:"required"`
	AppointmentType AppointmentTypeCode  `json:"appointmentType" binding:"required"`
	Notes           string               `json:"notes,omitempty"`

	// Либо известный пациент, либо данные для создания аккаунта
	ClientID  *uuid.UUID    `json:"clientId,omitempty"`
	NewClient *NewUserInput `json:"newClient,omitempty"`
}
