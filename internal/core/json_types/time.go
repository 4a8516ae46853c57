package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime — время внутри дня без даты, формат HH:MM:SS (принимаем и HH:MM)
type ClockTime struct {
	Time time.Time
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])
	parsedTime, err := time.Parse("15:04:05", str)
	if err != nil {
		parsedTime, err = time.Parse("15:04", str)
		if err != nil {
			return fmt.Errorf("failed to parse time: %v", err)
		}
	}
	*t = ClockTime{Time: parsedTime}
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format("15:04:05"))
}

// On совмещает время внутри дня с конкретной датой в заданной таймзоне
func (t ClockTime) On(day time.Time, loc *time.Location) time.Time {
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Time.Hour(), t.Time.Minute(), t.Time.Second(), 0, loc)
}

// Minutes возвращает смещение от полуночи в минутах, удобно для сравнений
func (t ClockTime) Minutes() int {
	return t.Time.Hour()*60 + t.Time.Minute()
}

// ParseClockTime парсит строку HH:MM:SS или HH:MM
func ParseClockTime(str string) (ClockTime, error) {
	var ct ClockTime
	parsedTime, err := time.Parse("15:04:05", str)
	if err != nil {
		parsedTime, err = time.Parse("15:04", str)
		if err != nil {
			return ct, fmt.Errorf("failed to parse time: %v", err)
		}
	}
	ct.Time = parsedTime
	return ct, nil
}
