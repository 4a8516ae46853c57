package availability_service

import (
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/utils"
)

type AvailabilityService struct {
	storage  out.StoragePort
	cache    out.CachePort
	notifier out.NotifierPort
	logger   out.LoggerPort

	calendar *domain.CalendarConfig
	location *time.Location

	// Производные множества из статичной конфигурации, строятся один раз
	holidays    map[string]struct{}
	blocked     map[string]struct{}
	workingDays map[time.Weekday]struct{}

	// Часы сервиса, подменяются в тестах
	now func() time.Time
}

func NewAvailabilityService(
	calendar *domain.CalendarConfig,
	location *time.Location,
	storagePort out.StoragePort,
	cachePort out.CachePort,
	notifierPort out.NotifierPort,
	logger out.LoggerPort,
) *AvailabilityService {
	s := &AvailabilityService{
		storage:     storagePort,
		cache:       cachePort,
		notifier:    notifierPort,
		logger:      logger.WithModule("AvailabilityService"),
		calendar:    calendar,
		location:    location,
		holidays:    make(map[string]struct{}),
		blocked:     make(map[string]struct{}),
		workingDays: make(map[time.Weekday]struct{}),
		now:         time.Now,
	}

	for _, d := range calendar.Holidays {
		s.holidays[s.dateKey(d.Date)] = struct{}{}
	}
	for _, d := range calendar.BlockedDates {
		s.blocked[s.dateKey(d.Date)] = struct{}{}
	}
	for _, wd := range calendar.WorkingDays {
		s.workingDays[time.Weekday(wd)] = struct{}{}
	}

	return s
}

func (s *AvailabilityService) dateKey(t time.Time) string {
	return t.In(s.location).Format("2006-01-02")
}

func (s *AvailabilityService) noticeWindow() time.Duration {
	return time.Duration(s.calendar.MinBookingNoticeHours) * time.Hour
}

func (s *AvailabilityService) startOfDay(t time.Time) time.Time {
	return utils.StartCurrentDay(t.In(s.location))
}
