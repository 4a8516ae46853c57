package in

import (
	"context"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
)

type AvailabilityUseCase interface {
	// Классификация календарной даты по статичной конфигурации
	ClassifyDay(ctx context.Context, date time.Time) domain.DayInfo

	// Список доступных слотов за период, границы дат включительно
	// publicOnly ограничивает выдачу видами приема, доступными онлайн
	GetAvailableSlots(ctx context.Context, startDate, endDate time.Time, typeCode domain.AppointmentTypeCode, publicOnly bool) ([]domain.Slot, error)

	// Бронирование выбранного слота с повторной проверкой конфликтов
	Book(ctx context.Context, req domain.BookingRequest) (*domain.Appointment, error)
}
