package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemstoreAdapter — локальный вариант хранилища: StoragePort поверх памяти
// Используется при STORAGE_BACKEND=memory и как хранилище в тестах
// Пересечение с неотмененной записью отклоняется на вставке, как и в postgres
type MemstoreAdapter struct {
	mu           sync.RWMutex
	rules        []domain.AvailabilityRule
	appointments map[uuid.UUID]*domain.Appointment
	users        map[uuid.UUID]*domain.User
	usersByEmail map[string]uuid.UUID
	passwords    map[uuid.UUID][]byte

	logger out.LoggerPort
	now    func() time.Time
}

func NewMemstoreAdapter(logger out.LoggerPort) *MemstoreAdapter {
	return &MemstoreAdapter{
		appointments: make(map[uuid.UUID]*domain.Appointment),
		users:        make(map[uuid.UUID]*domain.User),
		usersByEmail: make(map[string]uuid.UUID),
		passwords:    make(map[uuid.UUID][]byte),
		logger:       logger.WithModule("MemstoreAdapter"),
		now:          time.Now,
	}
}

// SeedRules загружает недельные правила из статичной конфигурации
// Внешний CRUD правил этому движку недоступен, memstore отдает их как есть
func (m *MemstoreAdapter) SeedRules(rules []domain.AvailabilityRule) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules = make([]domain.AvailabilityRule, len(rules))
	copy(m.rules, rules)
}

// SeedAppointment добавляет запись напрямую, минуя проверку пересечений
// Нужен тестам и импорту исторических данных
func (m *MemstoreAdapter) SeedAppointment(apt domain.Appointment) domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	stored := apt
	m.appointments[apt.ID] = &stored
	return stored
}

func (m *MemstoreAdapter) ListActiveRules(ctx context.Context) ([]domain.AvailabilityRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := make([]domain.AvailabilityRule, 0, len(m.rules))
	for _, rule := range m.rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	return active, nil
}

func (m *MemstoreAdapter) ListOverlappingAppointments(ctx context.Context, startDate, endDate time.Time) ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]domain.Appointment, 0)
	for _, apt := range m.appointments {
		if apt.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if apt.EndTime.Date.After(startDate) && apt.StartTime.Date.Before(endDate) {
			result = append(result, *apt)
		}
	}
	return result, nil
}

func (m *MemstoreAdapter) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Аналог exclusion-ограничения БД: пересечение отклоняется атомарно
	for _, existing := range m.appointments {
		if existing.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if existing.EndTime.Date.After(appointment.StartTime.Date) && existing.StartTime.Date.Before(appointment.EndTime.Date) {
			return nil, out.ErrConflict
		}
	}

	appointment.ID = uuid.New()
	now := json_types.NewDateTime(m.now())
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	stored := appointment
	m.appointments[appointment.ID] = &stored

	m.logger.Debug("memstore.appointment.created", out.LogFields{
		"appointmentId": appointment.ID,
	})

	return &appointment, nil
}

func (m *MemstoreAdapter) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (m *MemstoreAdapter) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.usersByEmail[normalizeEmail(email)]
	if !exists {
		return nil, nil
	}
	found := *m.users[id]
	return &found, nil
}

func (m *MemstoreAdapter) CreateUser(ctx context.Context, input domain.NewUserInput) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := normalizeEmail(input.Email)
	if _, exists := m.usersByEmail[email]; exists {
		return nil, fmt.Errorf("memstore: email already registered: %s", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.New(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Phone:     input.Phone,
		CreatedAt: json_types.NewDateTime(m.now()),
	}

	m.users[user.ID] = user
	m.usersByEmail[email] = user.ID
	m.passwords[user.ID] = hash

	m.logger.Debug("memstore.user.created", out.LogFields{
		"userId": user.ID,
	})

	created := *user
	return &created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
