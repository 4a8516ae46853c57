package out

import (
	"context"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
)

// CachePort кэширует только классификацию дней: она чистая функция
// статичной конфигурации. Списки слотов не кэшируются никогда —
// каждый запрос доступности должен видеть актуальные записи
type CachePort interface {
	GetDayInfo(ctx context.Context, date time.Time) (*domain.DayInfo, bool)
	StoreDayInfo(ctx context.Context, date time.Time, info domain.DayInfo)
	InvalidateDayInfoCache(ctx context.Context)
}
