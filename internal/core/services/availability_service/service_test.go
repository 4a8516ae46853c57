package availability_service

import (
	"context"
	"sync"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/out/memstore"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	"github.com/google/uuid"
)

// ---------- Общие помощники тестов пакета ----------

var paris = mustLoadParis()

func mustLoadParis() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(err)
	}
	return loc
}

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields) {}
func (nopLogger) Info(string, out.LogFields)  {}
func (nopLogger) Warn(string, out.LogFields)  {}
func (nopLogger) Error(string, out.LogFields) {}

func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

// recordingNotifier запоминает отправленные уведомления, опционально падает
type recordingNotifier struct {
	mu     sync.Mutex
	sent   []out.NewAppointmentNotification
	broken bool
}

func (n *recordingNotifier) NotifyNewAppointment(_ context.Context, notification out.NewAppointmentNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.broken {
		return context.DeadlineExceeded
	}
	n.sent = append(n.sent, notification)
	return nil
}

func clock(h, m int) json_types.ClockTime {
	return json_types.ClockTime{Time: time.Date(0, 1, 1, h, m, 0, 0, time.UTC)}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, paris)
}

func rule(dow int, start, end json_types.ClockTime, scheduleType domain.ScheduleType) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		ID:           uuid.New(),
		DayOfWeek:    dow,
		StartTime:    start,
		EndTime:      end,
		IsActive:     true,
		ScheduleType: scheduleType,
	}
}

// testCalendar — синтетический календарь: среда 09:30–12:30 и 13:00–16:00,
// сетка 60 минут, без минимального срока записи
// 2026-03-11 — обычная рабочая среда, 2026-03-18 — заблокированная среда,
// 2026-04-15 — среда внутри школьных каникул
func testCalendar() *domain.CalendarConfig {
	return &domain.CalendarConfig{
		AppointmentTypes: []domain.AppointmentType{
			{Code: domain.AppointmentTypeRemediation, Label: "Séance de rémédiation", DurationMinutes: 30, OnlineBookable: true},
			{Code: domain.AppointmentTypeBilan, Label: "Bilan complet", DurationMinutes: 90, OnlineBookable: false},
		},
		Rules: []domain.AvailabilityRule{
			rule(3, clock(9, 30), clock(12, 30), domain.ScheduleTypeNormal),
			rule(3, clock(13, 0), clock(16, 0), domain.ScheduleTypeNormal),
			rule(3, clock(9, 30), clock(18, 30), domain.ScheduleTypeExceptional),
		},
		Holidays: []json_types.Date{
			json_types.NewDate(date(2026, time.May, 14)),
		},
		SchoolVacations: []domain.VacationRange{
			{Label: "Vacances de printemps", Zone: "B", Start: json_types.NewDate(date(2026, time.April, 11)), End: json_types.NewDate(date(2026, time.April, 26))},
		},
		BlockedDates: []json_types.Date{
			json_types.NewDate(date(2026, time.March, 18)),
		},
		WorkingDays:           []int{1, 2, 3, 4, 5},
		SlotDurationMinutes:   60,
		MinBookingNoticeHours: 0,
		ValidUntil:            json_types.NewDate(date(2026, time.September, 30)),
	}
}

func newTestService(calendar *domain.CalendarConfig) (*AvailabilityService, *memstore.MemstoreAdapter) {
	store := memstore.NewMemstoreAdapter(nopLogger{})
	store.SeedRules(calendar.Rules)

	svc := NewAvailabilityService(calendar, paris, store, nil, nil, nopLogger{})
	// Фиксированные часы: задолго до тестовых дат, срок уведомления не мешает
	svc.now = func() time.Time { return time.Date(2026, time.January, 2, 8, 0, 0, 0, paris) }

	return svc, store
}

func seedAppointment(store *memstore.MemstoreAdapter, day time.Time, startH, startM, endH, endM int, status domain.AppointmentStatus) domain.Appointment {
	start := time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, paris)
	end := time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, paris)
	return store.SeedAppointment(domain.Appointment{
		ClientID:        uuid.New(),
		StartTime:       json_types.NewDateTime(start),
		EndTime:         json_types.NewDateTime(end),
		AppointmentType: domain.AppointmentTypeRemediation,
		Status:          status,
	})
}

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.Date.In(paris).Format("15:04"))
	}
	return starts
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
