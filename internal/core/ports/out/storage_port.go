package out

import (
	"context"
	"errors"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/google/uuid"
)

// ErrConflict возвращается хранилищем, если запись пересекается
// с существующей неотмененной записью на момент вставки
var ErrConflict = errors.New("appointment overlaps an existing appointment")

// StoragePort — единый порт доступа к данным для движка доступности
// Алгоритм один, бэкенды (память, postgres) дают только доступ к данным
type StoragePort interface {
	// Активные недельные правила приема
	ListActiveRules(ctx context.Context) ([]domain.AvailabilityRule, error)

	// Записи на прием, пересекающие период [startDate, endDate)
	// Отмененные записи не возвращаются
	ListOverlappingAppointments(ctx context.Context, startDate, endDate time.Time) ([]domain.Appointment, error)

	// Создание записи на прием, хранилище назначает id и метки времени
	// При пересечении с существующей записью возвращает ErrConflict
	CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)

	// Методы для работы с пациентами, используются только путем бронирования
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, input domain.NewUserInput) (*domain.User, error)
}
