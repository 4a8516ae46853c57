package availability_service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/out/cache"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/config"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
)

func TestClassifyDay_OrdinaryWorkingDay(t *testing.T) {
	svc, _ := newTestService(testCalendar())

	info := svc.ClassifyDay(context.Background(), date(2026, time.March, 11))

	if !info.IsWorkingDay {
		t.Error("expected an ordinary Wednesday to be a working day")
	}
	if info.IsHoliday || info.IsVacation || info.IsBlocked {
		t.Errorf("unexpected flags: %+v", info)
	}
	if info.ScheduleType != domain.ScheduleTypeNormal {
		t.Errorf("expected normal schedule, got %s", info.ScheduleType)
	}
}

func TestClassifyDay_BlockedDateWins(t *testing.T) {
	svc, _ := newTestService(testCalendar())

	info := svc.ClassifyDay(context.Background(), date(2026, time.March, 18))

	if !info.IsBlocked {
		t.Error("expected the date to be blocked")
	}
	if info.IsWorkingDay {
		t.Error("a blocked date must not count as a working day")
	}
}

func TestClassifyDay_HolidayOnWorkingDayIsExceptional(t *testing.T) {
	svc, _ := newTestService(testCalendar())

	// 2026-05-14 — четверг, праздник
	info := svc.ClassifyDay(context.Background(), date(2026, time.May, 14))

	if !info.IsHoliday {
		t.Error("expected the date to be a holiday")
	}
	if !info.IsWorkingDay {
		t.Error("a holiday on a working weekday stays a working day")
	}
	if info.ScheduleType != domain.ScheduleTypeExceptional {
		t.Errorf("expected exceptional schedule, got %s", info.ScheduleType)
	}
}

func TestClassifyDay_VacationBoundsInclusive(t *testing.T) {
	svc, _ := newTestService(testCalendar())
	ctx := context.Background()

	cases := []struct {
		day        time.Time
		inVacation bool
	}{
		{date(2026, time.April, 10), false}, // канун
		{date(2026, time.April, 11), true},  // первый день, суббота
		{date(2026, time.April, 15), true},  // середина
		{date(2026, time.April, 26), true},  // последний день, воскресенье
		{date(2026, time.April, 27), false}, // день после
	}

	for _, tc := range cases {
		info := svc.ClassifyDay(ctx, tc.day)
		if info.IsVacation != tc.inVacation {
			t.Errorf("%s: expected isVacation=%v, got %v", tc.day.Format("2006-01-02"), tc.inVacation, info.IsVacation)
		}
	}
}

func TestClassifyDay_VacationOnWeekendStaysNormal(t *testing.T) {
	svc, _ := newTestService(testCalendar())

	// Суббота внутри каникул: не рабочий день, расписание остается normal
	info := svc.ClassifyDay(context.Background(), date(2026, time.April, 11))

	if info.IsWorkingDay {
		t.Error("Saturday must not be a working day")
	}
	if info.ScheduleType != domain.ScheduleTypeNormal {
		t.Errorf("expected normal schedule on a non-working day, got %s", info.ScheduleType)
	}
}

func TestClassifyDay_Idempotent(t *testing.T) {
	svc, _ := newTestService(testCalendar())
	ctx := context.Background()
	day := date(2026, time.April, 15)

	first := svc.ClassifyDay(ctx, day)
	second := svc.ClassifyDay(ctx, day)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification is not idempotent: %+v vs %+v", first, second)
	}
}

func TestClassifyDay_PastValidUntilDoesNotFail(t *testing.T) {
	svc, _ := newTestService(testCalendar())

	// За горизонтом конфигурации: предупреждение, но не отказ
	info := svc.ClassifyDay(context.Background(), date(2026, time.October, 7))

	if !info.IsWorkingDay {
		t.Error("expected a plain Wednesday past the horizon to classify as working")
	}
}

func TestClassifyDay_CacheCoherent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.DaysSize = 16
	cfg.Location = paris

	cacheAdapter, err := cache.NewCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("unexpected cache init error: %v", err)
	}

	calendar := testCalendar()
	svc, _ := newTestService(calendar)
	svc.cache = cacheAdapter

	ctx := context.Background()
	day := date(2026, time.May, 14)

	direct := svc.classifyDay(day)
	viaCache := svc.ClassifyDay(ctx, day)
	cached := svc.ClassifyDay(ctx, day)

	if !reflect.DeepEqual(direct, viaCache) || !reflect.DeepEqual(viaCache, cached) {
		t.Errorf("cached classification differs: %+v vs %+v vs %+v", direct, viaCache, cached)
	}
}
