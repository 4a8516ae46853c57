package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	outport "github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, outport.LogFields) {}
func (nopLogger) Info(string, outport.LogFields)  {}
func (nopLogger) Warn(string, outport.LogFields)  {}
func (nopLogger) Error(string, outport.LogFields) {}

func (l nopLogger) WithFields(outport.LogFields) outport.LoggerPort { return l }
func (l nopLogger) WithModule(string) outport.LoggerPort            { return l }

func appointment(startH, startM, endH, endM int, status domain.AppointmentStatus) domain.Appointment {
	day := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	return domain.Appointment{
		ClientID:        uuid.New(),
		StartTime:       json_types.NewDateTime(day.Add(time.Duration(startH)*time.Hour + time.Duration(startM)*time.Minute)),
		EndTime:         json_types.NewDateTime(day.Add(time.Duration(endH)*time.Hour + time.Duration(endM)*time.Minute)),
		AppointmentType: domain.AppointmentTypeRemediation,
		Status:          status,
	}
}

func TestCreateAppointment_RejectsOverlap(t *testing.T) {
	store := NewMemstoreAdapter(nopLogger{})
	ctx := context.Background()

	if _, err := store.CreateAppointment(ctx, appointment(10, 0, 10, 30, domain.AppointmentStatusScheduled)); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	// Частичное пересечение с существующей записью
	if _, err := store.CreateAppointment(ctx, appointment(10, 15, 10, 45, domain.AppointmentStatusScheduled)); !errors.Is(err, outport.ErrConflict) {
		t.Errorf("expected ErrConflict on overlap, got %v", err)
	}

	// Касание границ пересечением не считается
	if _, err := store.CreateAppointment(ctx, appointment(10, 30, 11, 0, domain.AppointmentStatusScheduled)); err != nil {
		t.Errorf("back-to-back insert must succeed, got %v", err)
	}
}

func TestCreateAppointment_CancelledDoesNotBlock(t *testing.T) {
	store := NewMemstoreAdapter(nopLogger{})
	ctx := context.Background()

	store.SeedAppointment(appointment(10, 0, 10, 30, domain.AppointmentStatusCancelled))

	created, err := store.CreateAppointment(ctx, appointment(10, 0, 10, 30, domain.AppointmentStatusScheduled))
	if err != nil {
		t.Fatalf("insert over a cancelled appointment must succeed, got %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected an assigned id")
	}
	if created.CreatedAt.Date.IsZero() || created.UpdatedAt.Date.IsZero() {
		t.Error("expected createdAt/updatedAt to be stamped")
	}
}

func TestListOverlappingAppointments_SkipsCancelled(t *testing.T) {
	store := NewMemstoreAdapter(nopLogger{})
	ctx := context.Background()

	store.SeedAppointment(appointment(10, 0, 10, 30, domain.AppointmentStatusScheduled))
	store.SeedAppointment(appointment(11, 0, 11, 30, domain.AppointmentStatusCancelled))
	store.SeedAppointment(appointment(14, 0, 14, 30, domain.AppointmentStatusConfirmed))

	day := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	result, err := store.ListOverlappingAppointments(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 blocking appointments, got %d", len(result))
	}
	for _, apt := range result {
		if apt.Status == domain.AppointmentStatusCancelled {
			t.Error("cancelled appointments must not be listed")
		}
	}
}

func TestListActiveRules_FiltersInactive(t *testing.T) {
	store := NewMemstoreAdapter(nopLogger{})

	active := domain.AvailabilityRule{ID: uuid.New(), DayOfWeek: 3, IsActive: true, ScheduleType: domain.ScheduleTypeNormal}
	inactive := domain.AvailabilityRule{ID: uuid.New(), DayOfWeek: 3, IsActive: false, ScheduleType: domain.ScheduleTypeNormal}
	store.SeedRules([]domain.AvailabilityRule{active, inactive})

	rules, err := store.ListActiveRules(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 1 || rules[0].ID != active.ID {
		t.Errorf("expected only the active rule, got %d rules", len(rules))
	}
}

func TestCreateUser_EmailCaseInsensitive(t *testing.T) {
	store := NewMemstoreAdapter(nopLogger{})
	ctx := context.Background()

	input := domain.NewUserInput{
		FirstName: "Camille",
		LastName:  "Moreau",
		Email:     "Camille.Moreau@Example.fr",
		Password:  "tres-secret-1",
	}
	created, err := store.CreateUser(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != "camille.moreau@example.fr" {
		t.Errorf("expected a normalized email, got %s", created.Email)
	}

	// Поиск и проверка уникальности нечувствительны к регистру
	found, err := store.GetUserByEmail(ctx, "  CAMILLE.MOREAU@example.FR ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Error("lookup must find the user regardless of email case")
	}

	if _, err := store.CreateUser(ctx, input); err == nil {
		t.Error("duplicate email must be rejected")
	}
}

func TestGetUserByID_MissingIsNilNil(t *testing.T) {
	store := NewMemstoreAdapter(nopLogger{})

	user, err := store.GetUserByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Error("expected nil for an unknown user")
	}
}
