package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
)

// LoadCalendarConfig читает статичную конфигурацию календаря из JSON-файла
// Некорректная конфигурация фатальна: тихая пустая доступность недопустима
func LoadCalendarConfig(path string) (*domain.CalendarConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar config %q: %w", path, err)
	}

	var calendar domain.CalendarConfig
	if err := json.Unmarshal(data, &calendar); err != nil {
		return nil, fmt.Errorf("failed to parse calendar config %q: %w", path, err)
	}

	if err := calendar.Validate(); err != nil {
		return nil, err
	}

	return &calendar, nil
}
