package availability_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
)

const minPasswordLength = 8

// Book фиксирует выбранный слот: повторно проверяет конфликты непосредственно
// перед вставкой и атомарно создает запись (и аккаунт для нового пациента)
// Частичного состояния не остается: ошибка до вставки записи ничего не пишет,
// кроме уже созданного аккаунта — это задокументированная асимметрия
func (s *AvailabilityService) Book(ctx context.Context, req domain.BookingRequest) (*domain.Appointment, error) {
	apptType, exists := s.calendar.AppointmentTypeByCode(req.AppointmentType)
	if !exists {
		return nil, ErrUnknownAppointmentType
	}

	// Время окончания всегда выводим из вида приема, клиенту не доверяем
	startTime := req.StartTime.On(req.Date.Date, s.location)
	endTime := startTime.Add(time.Duration(apptType.DurationMinutes) * time.Minute)

	s.logger.Info("booking.started", out.LogFields{
		"date":            s.dateKey(startTime),
		"appointmentType": apptType.Code,
	})

	// Срок минимального уведомления перепроверяется на момент фиксации
	if !startTime.After(s.now().Add(s.noticeWindow())) {
		s.logger.Warn("booking.commit.too_late", out.LogFields{
			"startTime": startTime,
		})
		return nil, ErrSlotUnavailable
	}

	client, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	// Повторная проверка конфликтов закрывает окно между «слот показан свободным»
	// и «слот зафиксирован»; гонку окончательно исключает ограничение хранилища
	appointments, err := s.storage.ListOverlappingAppointments(ctx, startTime, endTime)
	if err != nil {
		s.logger.Error("booking.conflict_check.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("booking.conflict_check.failed: %w", err)
	}
	for _, apt := range appointments {
		if apt.Blocks() && overlaps(startTime, endTime, apt.StartTime.Date, apt.EndTime.Date) {
			s.logger.Warn("booking.commit.conflict", out.LogFields{
				"startTime":     startTime,
				"appointmentId": apt.ID,
			})
			return nil, ErrSlotUnavailable
		}
	}

	created, err := s.storage.CreateAppointment(ctx, domain.Appointment{
		ClientID:        client.ID,
		StartTime:       json_types.NewDateTime(startTime),
		EndTime:         json_types.NewDateTime(endTime),
		AppointmentType: apptType.Code,
		Status:          domain.AppointmentStatusScheduled,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, out.ErrConflict) {
			s.logger.Warn("booking.commit.conflict", out.LogFields{
				"startTime": startTime,
			})
			return nil, ErrSlotUnavailable
		}
		s.logger.Error("booking.commit.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("booking.commit.failed: %w", err)
	}

	s.logger.Info("booking.committed", out.LogFields{
		"appointmentId": created.ID,
		"clientId":      client.ID,
	})

	s.notifyNewAppointment(ctx, created, apptType, client)

	return created, nil
}

// resolveClient возвращает существующего пациента или создает аккаунт нового
// Отказ до создания записи: занятый email, слабый пароль, ошибка хранилища
func (s *AvailabilityService) resolveClient(ctx context.Context, req domain.BookingRequest) (*domain.User, error) {
	if req.ClientID != nil {
		client, err := s.storage.GetUserByID(ctx, *req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("booking.client.fetch_failed: %w", err)
		}
		if client == nil {
			return nil, ErrClientNotFound
		}
		return client, nil
	}

	if req.NewClient == nil {
		return nil, ErrMissingClient
	}

	existing, err := s.storage.GetUserByEmail(ctx, req.NewClient.Email)
	if err != nil {
		return nil, fmt.Errorf("booking.client.fetch_failed: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	if len(req.NewClient.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	client, err := s.storage.CreateUser(ctx, *req.NewClient)
	if err != nil {
		// Без аккаунта бронь не создаем, осиротевших записей не бывает
		s.logger.Error("booking.client.create_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("booking.client.create_failed: %w", err)
	}

	s.logger.Info("booking.client.created", out.LogFields{
		"clientId": client.ID,
	})

	return client, nil
}

// notifyNewAppointment — побочный эффект без гарантий: неудача отправки
// логируется мягким предупреждением и никогда не откатывает бронь
func (s *AvailabilityService) notifyNewAppointment(ctx context.Context, apt *domain.Appointment, apptType domain.AppointmentType, client *domain.User) {
	if s.notifier == nil {
		return
	}

	local := apt.StartTime.Date.In(s.location)
	err := s.notifier.NotifyNewAppointment(ctx, out.NewAppointmentNotification{
		ClientName:      client.FullName(),
		ClientEmail:     client.Email,
		ClientPhone:     client.Phone,
		Date:            local.Format("2006-01-02"),
		Time:            local.Format("15:04"),
		Type:            apptType.Label,
		DurationMinutes: apptType.DurationMinutes,
	})
	if err != nil {
		s.logger.Warn("booking.notify.failed", out.LogFields{
			"appointmentId": apt.ID,
			"error":         err.Error(),
		})
	}
}
